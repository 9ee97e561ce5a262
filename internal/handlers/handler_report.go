package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/export"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportRoutes hangs the report routes off an existing /trades/:tradeNumber group.
func registerReportRoutes(trade *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := &reportHandler{reportingService: rs}

	trade.GET("/transaction-details", h.transactionDetails)
}

// transactionDetails godoc
// @Summary Get a trade's transaction details
// @Description Ledger, trust deposit and trust transfer sections for a trade. Unfinalized trades
// @Description show the lines finalization would post. Use format=xlsx for a spreadsheet.
// @Tags reports
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param tradeNumber path string true "Trade number"
// @Param format query string false "json or xlsx" Enums(json, xlsx)
// @Success 200 {object} domain.TransactionDetails
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber}/transaction-details [get]
func (h *reportHandler) transactionDetails(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unsupported format %q", format)})
		return
	}
	tradeNumber := c.Param("tradeNumber")
	details, err := h.reportingService.TransactionDetails(c.Request.Context(), tradeNumber)
	if err != nil {
		respondError(c, err, "Failed to build transaction details")
		return
	}
	if format == "json" {
		c.JSON(http.StatusOK, details)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTransactionDetails(&buf, details); err != nil {
		respondError(c, err, "Failed to export transaction details")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.TransactionDetailsFilename(tradeNumber)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

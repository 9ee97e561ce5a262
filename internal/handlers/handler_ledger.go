package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/SscSPs/brokerage_trade_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ls}

	ledger := rg.Group("/ledger")
	{
		ledger.POST("", h.postEntry)
		ledger.GET("", h.listEntries)
	}
}

// postEntry godoc
// @Summary Post a manual ledger entry
// @Description Stores a single debit or credit and pushes it to the remote ledger when one is configured.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Ledger entry"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger [post]
func (h *ledgerHandler) postEntry(c *gin.Context) {
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received manual ledger entry",
		slog.String("account_number", req.AccountNumber), slog.String("trade_number", req.TradeNumber))

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List a trade's ledger entries
// @Description Pages through the entries posted for a trade, oldest first.
// @Tags ledger
// @Produce json
// @Param tradeNumber query string true "Trade number"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	entries, next, err := h.ledgerService.ListEntriesByTrade(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{Entries: dto.ToLedgerEntryResponses(entries), NextToken: next})
}

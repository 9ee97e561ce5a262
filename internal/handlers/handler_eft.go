package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type eftHandler struct {
	eftService portssvc.EFTSvcFacade
}

func registerEFTRoutes(rg *gin.RouterGroup, es portssvc.EFTSvcFacade) {
	h := &eftHandler{eftService: es}

	rg.GET("/eft/next-number", h.nextNumber)
}

// nextNumber godoc
// @Summary Allocate the next EFT number
// @Description Returns a new "EFT<n>" reference one past the highest issued.
// @Tags eft
// @Produce json
// @Success 200 {object} dto.NextEFTNumberResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /eft/next-number [get]
func (h *eftHandler) nextNumber(c *gin.Context) {
	number, err := h.eftService.NextEFTNumber(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to allocate EFT number")
		return
	}
	c.JSON(http.StatusOK, dto.NextEFTNumberResponse{EFTNumber: number})
}

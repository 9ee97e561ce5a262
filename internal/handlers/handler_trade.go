package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/SscSPs/brokerage_trade_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tradeHandler serves trade documents, their trust EFTs and finalization.
type tradeHandler struct {
	tradeService        portssvc.TradeSvcFacade
	finalizationService portssvc.FinalizationSvcFacade
}

func newTradeHandler(ts portssvc.TradeSvcFacade, fs portssvc.FinalizationSvcFacade) *tradeHandler {
	return &tradeHandler{tradeService: ts, finalizationService: fs}
}

func registerTradeRoutes(rg *gin.RouterGroup, ts portssvc.TradeSvcFacade, fs portssvc.FinalizationSvcFacade) *gin.RouterGroup {
	h := newTradeHandler(ts, fs)

	trade := rg.Group("/trades/:tradeNumber")
	{
		trade.PUT("", h.upsertTrade)
		trade.GET("", h.getTrade)
		trade.POST("/trust-efts", h.recordTrustEFT)
		trade.GET("/trust-efts", h.listTrustEFTs)
		trade.GET("/payment-suggestion", h.paymentSuggestion)
		trade.POST("/finalization/preview", h.previewFinalization)
		trade.POST("/finalize", h.finalize)
	}
	return trade
}

// upsertTrade godoc
// @Summary Create or replace a trade
// @Description Stores the trade document. Finalized trades cannot be changed.
// @Tags trades
// @Accept json
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Param trade body dto.UpsertTradeRequest true "Trade document"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Trade is finalized"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber} [put]
func (h *tradeHandler) upsertTrade(c *gin.Context) {
	var req dto.UpsertTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trade, err := h.tradeService.UpsertTrade(c.Request.Context(), c.Param("tradeNumber"), req.Trade, userID)
	if err != nil {
		respondError(c, err, "Failed to save trade")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// getTrade godoc
// @Summary Get a trade
// @Tags trades
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Success 200 {object} dto.TradeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber} [get]
func (h *tradeHandler) getTrade(c *gin.Context) {
	trade, err := h.tradeService.GetTrade(c.Request.Context(), c.Param("tradeNumber"))
	if err != nil {
		respondError(c, err, "Failed to get trade")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// recordTrustEFT godoc
// @Summary Record a trust EFT
// @Description Records a transfer from a trust account. A number is allocated when none is given.
// @Tags trades
// @Accept json
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Param eft body dto.CreateTrustEFTRequest true "Trust EFT"
// @Success 201 {object} dto.TrustEFTResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "EFT already recorded"
// @Security BearerAuth
// @Router /trades/{tradeNumber}/trust-efts [post]
func (h *tradeHandler) recordTrustEFT(c *gin.Context) {
	var req dto.CreateTrustEFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eft, err := req.ToDomain()
	if err != nil {
		respondError(c, fmt.Errorf("%w: date: %v", apperrors.ErrValidation, err), "Failed to record trust EFT")
		return
	}
	saved, err := h.tradeService.RecordTrustEFT(c.Request.Context(), c.Param("tradeNumber"), eft, userID)
	if err != nil {
		respondError(c, err, "Failed to record trust EFT")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTrustEFTResponse(saved))
}

// listTrustEFTs godoc
// @Summary List a trade's trust EFTs
// @Tags trades
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Success 200 {array} dto.TrustEFTResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber}/trust-efts [get]
func (h *tradeHandler) listTrustEFTs(c *gin.Context) {
	efts, err := h.tradeService.ListTrustEFTs(c.Request.Context(), c.Param("tradeNumber"))
	if err != nil {
		respondError(c, err, "Failed to list trust EFTs")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrustEFTResponses(efts))
}

// paymentSuggestion godoc
// @Summary Suggest the payment receipt for finalization
// @Description Returns the default payment amount and whether a shortfall receipt is needed.
// @Tags finalization
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Success 200 {object} domain.PaymentSuggestion
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber}/payment-suggestion [get]
func (h *tradeHandler) paymentSuggestion(c *gin.Context) {
	s, err := h.finalizationService.SuggestPayment(c.Request.Context(), c.Param("tradeNumber"))
	if err != nil {
		respondError(c, err, "Failed to suggest payment")
		return
	}
	c.JSON(http.StatusOK, s)
}

// previewFinalization godoc
// @Summary Preview the ledger lines of a finalization
// @Description Derives the lines finalize would post without storing anything.
// @Tags finalization
// @Accept json
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Param request body dto.FinalizeTradeRequest false "Finalization options"
// @Success 200 {object} dto.FinalizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber}/finalization/preview [post]
func (h *tradeHandler) previewFinalization(c *gin.Context) {
	var req dto.FinalizeTradeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	cmd, err := req.ToCommand(c.Param("tradeNumber"), userID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err), "Failed to preview finalization")
		return
	}
	result, err := h.finalizationService.Preview(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err, "Failed to preview finalization")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinalizationResponse(result))
}

// finalize godoc
// @Summary Finalize a trade
// @Description Posts the trade's ledger lines and marks it finalized. Entries the remote ledger
// @Description does not accept stay pending and are retried in the background.
// @Tags finalization
// @Accept json
// @Produce json
// @Param tradeNumber path string true "Trade number"
// @Param request body dto.FinalizeTradeRequest true "Finalization"
// @Success 200 {object} dto.FinalizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Trade already finalized"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{tradeNumber}/finalize [post]
func (h *tradeHandler) finalize(c *gin.Context) {
	var req dto.FinalizeTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("trade_number", c.Param("tradeNumber")))
	cmd, err := req.ToCommand(c.Param("tradeNumber"), userID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err), "Failed to finalize trade")
		return
	}
	logger.Info("Received request to finalize trade", slog.Bool("fallen_thru", req.FallenThru))

	result, err := h.finalizationService.Finalize(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err, "Failed to finalize trade")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinalizationResponse(result))
}

package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func newCommissionHandler(cs portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{commissionService: cs}
}

func registerCommissionRoutes(rg *gin.RouterGroup, cs portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(cs)

	rg.GET("/fee-plans", h.listFeePlans)
	rg.POST("/commissions/calculate", h.calculate)
}

// listFeePlans godoc
// @Summary List fee plans
// @Description Returns the fee plans an agent split can be priced with.
// @Tags commissions
// @Produce json
// @Success 200 {array} dto.FeePlanResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /fee-plans [get]
func (h *commissionHandler) listFeePlans(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToFeePlanResponses(h.commissionService.ListFeePlans(c.Request.Context())))
}

// calculate godoc
// @Summary Calculate an agent commission
// @Description Applies HST, the fee plan and any buyer rebate to an agent's award.
// @Tags commissions
// @Accept json
// @Produce json
// @Param request body dto.CalculateCommissionRequest true "Agent split"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown fee plan"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /commissions/calculate [post]
func (h *commissionHandler) calculate(c *gin.Context) {
	var req dto.CalculateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.commissionService.CalculateAgentCommission(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to calculate commission")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(result))
}

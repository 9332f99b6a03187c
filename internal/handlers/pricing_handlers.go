package handlers

import (
	"errors"
	"net/http"

	"xero_backend/internal/middleware"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PricingHandler holds the pricing service.
type PricingHandler struct {
	pricingService services.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(ps services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: ps}
}

// AdjustPrice runs the active pricing rules against one item.
func (h *PricingHandler) AdjustPrice(c *gin.Context) {
	adjustment, err := h.pricingService.AdjustPrice(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		utils.LogError(err, "AdjustPrice: Error from pricingService.AdjustPrice")
		if errors.Is(err, services.ErrPricingItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found in inventory.", err.Error()))
		} else if errors.Is(err, services.ErrPricingRemoteCall) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeInternalServerError, "A collaborator service call failed.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to adjust price.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, adjustment)
}

// ListRules returns the rule set in application order.
func (h *PricingHandler) ListRules(c *gin.Context) {
	c.JSON(http.StatusOK, h.pricingService.ListRules())
}

// SetRuleActiveRequest toggles one rule's active flag.
type SetRuleActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetRuleActive enables or disables a named rule.
func (h *PricingHandler) SetRuleActive(c *gin.Context) {
	var req SetRuleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	rule, err := h.pricingService.SetRuleActive(c.Param("name"), *req.Active)
	if err != nil {
		if errors.Is(err, services.ErrPricingRuleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Pricing rule not found.", err.Error()))
			return
		}
		utils.LogError(err, "SetRuleActive: Error from pricingService.SetRuleActive")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update rule.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, rule)
}

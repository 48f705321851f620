// internal/handlers/pricing.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

type massDiscountRequest struct {
	Percent float64 `json:"percent" binding:"required,gt=0,lte=100"`
	Limit   int     `json:"limit,omitempty"`
}

// POST /admin/pricing/preview
func (h *PricingHandler) PreviewDiscount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req massDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	items, err := h.pricingService.Preview(c.Request.Context(), req.Percent, req.Limit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"preview": items})
}

// POST /admin/pricing/apply
// Best-effort batch: a 200 with per-product errors means the run partially
// failed and should be re-invoked after fixing the listed rows.
func (h *PricingHandler) ApplyMassDiscount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req massDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.pricingService.ApplyMassDiscount(c.Request.Context(), req.Percent)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	response := gin.H{
		"message": i18n.T(lang, i18n.KeyPricingApplied, result.UpdatedCount),
		"result":  result,
	}
	if len(result.BelowCostWarnings) > 0 {
		response["warning"] = i18n.T(lang, i18n.KeyPricingBelowCost, len(result.BelowCostWarnings))
	}

	utils.SuccessResponse(c, response)
}

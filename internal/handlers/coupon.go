// internal/handlers/coupon.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// POST /coupons/validate
// Runs the code against the order total and answers with either the computed
// discount or the first failing rule's message.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Code       string  `json:"code" binding:"required"`
		OrderTotal float64 `json:"order_total" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	validation, err := h.couponService.ValidateCode(req.Code, req.OrderTotal)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	if !validation.Valid {
		utils.SuccessResponse(c, gin.H{
			"valid":   false,
			"message": i18n.T(lang, validation.MessageKey, validation.MessageArgs...),
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"valid":    true,
		"message":  i18n.T(lang, i18n.KeyCouponValid),
		"discount": validation.Discount,
		"coupon": gin.H{
			"code":          validation.Coupon.Code,
			"discount_type": validation.Coupon.DiscountType,
			"value":         validation.Coupon.Value,
		},
	})
}

// GET /coupons
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.couponService.ListCoupons(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(coupons, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	coupon, err := h.couponService.CreateCoupon(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, gin.H{"coupon": coupon})
}

// PUT /coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID", nil)
		return
	}

	var req services.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	coupon, err := h.couponService.UpdateCoupon(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "coupon")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"coupon": coupon})
}

// DELETE /coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID", nil)
		return
	}

	if err := h.couponService.DeleteCoupon(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "coupon")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

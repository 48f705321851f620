// internal/handlers/checkout.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type CheckoutHandler struct {
	orderService *services.OrderService
}

func NewCheckoutHandler(orderService *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{orderService: orderService}
}

// POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	resp, err := h.orderService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "cart is empty"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
		case strings.Contains(err.Error(), "coupon rejected"):
			utils.BadRequestResponse(c, err.Error(), nil)
		case strings.Contains(err.Error(), "out of stock"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductOutOfStock), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyOrderCreated),
		"checkout": resp,
	})
}

// GET /payments/callback/:provider
// Return redirect from the hosted checkout. Reconciles the payment by its
// gateway reference.
func (h *CheckoutHandler) PaymentCallback(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	provider := models.PaymentProvider(c.Param("provider"))

	payment, err := h.orderService.HandleRedirect(provider, c.Request.URL.Query())
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "payment")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	messageKey := i18n.KeyPaymentFailed
	if payment.Status == models.PaymentStatusPaid {
		messageKey = i18n.KeyPaymentConfirmed
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"payment": payment,
	})
}

// GET /orders
func (h *CheckoutHandler) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.ListOrders(&userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /orders/:id
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	// Admins see any order, customers only their own
	scope := &userID
	if role, _ := utils.GetUserRoleFromContext(c); role == "admin" {
		scope = nil
	}

	order, err := h.orderService.GetOrder(orderID, scope)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "order")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// GET /admin/orders
func (h *CheckoutHandler) GetAllOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.ListOrders(nil, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/payments/:id/status
func (h *CheckoutHandler) SetPaymentStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment ID", nil)
		return
	}

	var req struct {
		Status models.PaymentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	payment, err := h.orderService.SetPaymentStatus(paymentID, req.Status)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "payment")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"payment": payment})
}

// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/config"
	"github.com/alluracouro/allura-backend/internal/gateway"
	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type OrderService struct {
	db            *gorm.DB
	cfg           *config.Config
	cartService   *CartService
	couponService *CouponService
	providers     map[models.PaymentProvider]gateway.CheckoutProvider
}

type CheckoutRequest struct {
	Provider     string                 `json:"provider,omitempty"`
	CouponCode   string                 `json:"coupon_code,omitempty"`
	ShippingCEP  string                 `json:"shipping_cep" validate:"required,cep"`
	ShippingInfo map[string]interface{} `json:"shipping_info,omitempty"`
}

type CheckoutResponse struct {
	Order        *models.Order         `json:"order"`
	Payment      *models.Payment       `json:"payment"`
	CheckoutLink *gateway.CheckoutLink `json:"checkout_link"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, cartService *CartService, couponService *CouponService, providers []gateway.CheckoutProvider) *OrderService {
	byName := make(map[models.PaymentProvider]gateway.CheckoutProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &OrderService{
		db:            db,
		cfg:           cfg,
		cartService:   cartService,
		couponService: couponService,
		providers:     byName,
	}
}

// Checkout turns the user's cart into an order, creates the pending payment
// row and hands back the gateway's hosted checkout link. The cart is cleared
// once the order is persisted; payment settlement arrives later through the
// gateway callback.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *CheckoutRequest) (*CheckoutResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	providerName := models.PaymentProvider(req.Provider)
	if req.Provider == "" {
		providerName = models.PaymentProvider(s.cfg.Payment.DefaultProvider)
	}
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("unknown payment provider: %s", providerName)
	}

	cart, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	subtotal := cart.Subtotal

	var discount float64
	var couponCode string
	if req.CouponCode != "" {
		validation, err := s.couponService.ValidateCode(req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			return nil, fmt.Errorf("coupon rejected: %s", validation.MessageKey)
		}
		discount = validation.Discount
		couponCode = validation.Coupon.Code
	}

	shipping := s.cfg.Store.DefaultShippingFee
	if subtotal-discount >= s.cfg.Store.FreeShippingAbove {
		shipping = 0
	}
	total := utils.RoundMoney(subtotal - discount + shipping)

	reference, err := utils.GenerateOrderReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order reference: %w", err)
	}

	order := &models.Order{
		UserID:         userID,
		Status:         models.OrderStatusPending,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		ShippingAmount: shipping,
		Total:          total,
		CouponCode:     couponCode,
		ShippingCEP:    utils.FormatCEP(req.ShippingCEP),
		ShippingInfo:   models.JSONB(req.ShippingInfo),
	}

	payment := &models.Payment{
		Provider:          providerName,
		ProviderReference: reference,
		Status:            models.PaymentStatusPending,
		Amount:            total,
		Metadata:          models.JSONB{"reference": reference},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range cart.Items {
			item := &cart.Items[i]
			if !item.Product.IsAvailable(item.Quantity) {
				return fmt.Errorf("product %s is out of stock", item.Product.Name)
			}

			orderItem := &models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				UnitPrice:   item.Product.Price,
				Quantity:    item.Quantity,
				Attributes:  item.Attributes,
			}
			if err := tx.Create(orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}
		}

		payment.OrderID = order.ID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if couponCode != "" {
		if err := s.couponService.Redeem(couponCode); err != nil {
			logrus.WithError(err).Warn("Failed to redeem coupon after checkout")
		}
	}

	checkoutItems := make([]gateway.CheckoutItem, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		checkoutItem := gateway.CheckoutItem{
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
		}
		if len(item.Product.Images) > 0 {
			checkoutItem.ImageURL = item.Product.Images[0]
		}
		checkoutItems = append(checkoutItems, checkoutItem)
	}

	link, err := provider.CreateCheckoutLink(ctx, &gateway.CheckoutRequest{
		OrderID:       order.ID,
		Reference:     reference,
		CustomerEmail: user.Email,
		CustomerName:  user.Name,
		Items:         checkoutItems,
		Total:         total,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout link: %w", err)
	}

	// Stripe mints its own session id; keep it as the reconciliation key.
	if link.Reference != reference {
		s.db.Model(payment).Update("provider_reference", link.Reference)
		payment.ProviderReference = link.Reference
	}

	if err := s.cartService.ClearCart(userID); err != nil {
		logrus.WithError(err).Warn("Failed to clear cart after checkout")
	}

	s.db.Preload("Items").First(order, order.ID)

	return &CheckoutResponse{
		Order:        order,
		Payment:      payment,
		CheckoutLink: link,
	}, nil
}

// HandleRedirect reconciles a gateway return redirect against the pending
// payment. Status values come straight from the gateway; nothing is enforced
// beyond recording them.
func (s *OrderService) HandleRedirect(providerName models.PaymentProvider, params url.Values) (*models.Payment, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("unknown payment provider: %s", providerName)
	}

	result, err := provider.ParseRedirectParams(params)
	if err != nil {
		return nil, err
	}

	reference := result.TransactionID
	if reference == "" {
		reference = result.OrderNSU
	}

	var payment models.Payment
	if err := s.db.Where("provider = ? AND provider_reference = ?", providerName, reference).
		Preload("Order").
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if result.Paid {
		now := time.Now()
		updates["status"] = models.PaymentStatusPaid
		updates["paid_at"] = &now
	} else {
		updates["status"] = models.PaymentStatusFailed
	}

	if err := s.db.Model(&payment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if result.Paid {
		s.db.Model(&models.Order{}).Where("id = ?", payment.OrderID).
			Update("status", models.OrderStatusPaid)
	}

	s.db.Preload("Order").First(&payment, payment.ID)
	return &payment, nil
}

// SetPaymentStatus is the admin override for manual reconciliation.
func (s *OrderService) SetPaymentStatus(paymentID uuid.UUID, status models.PaymentStatus) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.PaymentStatusPaid && payment.PaidAt == nil {
		now := time.Now()
		updates["paid_at"] = &now
	}
	if err := s.db.Model(&payment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if status == models.PaymentStatusPaid {
		s.db.Model(&models.Order{}).Where("id = ?", payment.OrderID).
			Update("status", models.OrderStatusPaid)
	}

	return &payment, nil
}

func (s *OrderService) GetOrder(id uuid.UUID, userID *uuid.UUID) (*models.Order, error) {
	var order models.Order
	query := s.db.Preload("Items").Preload("Items.Product").Preload("Payments")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListOrders(userID *uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Preload("Items").Preload("Payments")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

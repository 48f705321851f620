// internal/services/coupon_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type CouponService struct {
	db *gorm.DB
}

type CouponRequest struct {
	Code          string              `json:"code" validate:"required,coupon_code"`
	Description   string              `json:"description,omitempty"`
	DiscountType  models.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	Value         float64             `json:"value" validate:"required,gt=0"`
	MaxUses       *int                `json:"max_uses,omitempty" validate:"omitempty,min=1"`
	StartsAt      *time.Time          `json:"starts_at,omitempty"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
	MinOrderValue float64             `json:"min_order_value" validate:"min=0"`
	IsActive      bool                `json:"is_active"`
}

// CouponValidation is the outcome of checking a code against an order total.
// When Valid is false, MessageKey (plus MessageArgs) selects the user-facing
// reason; the first failing rule wins.
type CouponValidation struct {
	Valid       bool           `json:"valid"`
	Coupon      *models.Coupon `json:"coupon,omitempty"`
	Discount    float64        `json:"discount"`
	MessageKey  string         `json:"-"`
	MessageArgs []interface{}  `json:"-"`
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// EvaluateCoupon runs the validation rules in their fixed order: not yet
// started, expired, usage cap exhausted, below minimum order. The first
// failing rule short-circuits. On success the discount is computed as
// total*pct/100 for percentage coupons and min(value, total) for fixed ones,
// so a fixed discount never exceeds the order total.
func EvaluateCoupon(coupon *models.Coupon, orderTotal float64, now time.Time) *CouponValidation {
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return &CouponValidation{MessageKey: i18n.KeyCouponNotStarted}
	}

	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return &CouponValidation{MessageKey: i18n.KeyCouponExpired}
	}

	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return &CouponValidation{MessageKey: i18n.KeyCouponUsageLimit}
	}

	if orderTotal < coupon.MinOrderValue {
		return &CouponValidation{
			MessageKey:  i18n.KeyCouponMinOrder,
			MessageArgs: []interface{}{utils.FormatBRL(coupon.MinOrderValue)},
		}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		discount = orderTotal * coupon.Value / 100
	case models.DiscountTypeFixed:
		discount = coupon.Value
		if discount > orderTotal {
			discount = orderTotal
		}
	}

	return &CouponValidation{
		Valid:    true,
		Coupon:   coupon,
		Discount: utils.RoundMoney(discount),
	}
}

// ValidateCode looks up an active coupon by its normalized code and evaluates
// it against the order total.
func (s *CouponService) ValidateCode(code string, orderTotal float64) (*CouponValidation, error) {
	coupon, err := s.findActiveByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CouponValidation{MessageKey: i18n.KeyCouponNotFound}, nil
		}
		return nil, err
	}

	return EvaluateCoupon(coupon, orderTotal, time.Now()), nil
}

// Redeem bumps the usage counter after a successful checkout.
func (s *CouponService) Redeem(code string) error {
	result := s.db.Model(&models.Coupon{}).
		Where("code = ?", normalizeCode(code)).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to redeem coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("coupon not found")
	}
	return nil
}

func (s *CouponService) ListCoupons(params utils.PaginationParams) ([]models.Coupon, int64, error) {
	query := s.db.Model(&models.Coupon{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToUpper(params.Search) + "%"
		query = query.Where("code LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	allowedSortFields := []string{"created_at", "code", "value", "used_count", "expires_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var coupons []models.Coupon
	if err := query.Find(&coupons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch coupons: %w", err)
	}

	return coupons, total, nil
}

func (s *CouponService) CreateCoupon(req *CouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.DiscountType == models.DiscountTypePercentage && req.Value > 100 {
		return nil, errors.New("percentage discount cannot exceed 100")
	}

	coupon := &models.Coupon{
		Code:          normalizeCode(req.Code),
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		Value:         req.Value,
		MaxUses:       req.MaxUses,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
		MinOrderValue: req.MinOrderValue,
		IsActive:      req.IsActive,
	}
	if err := s.db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) UpdateCoupon(id uuid.UUID, req *CouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var coupon models.Coupon
	if err := s.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("coupon not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"code":            normalizeCode(req.Code),
		"description":     req.Description,
		"discount_type":   req.DiscountType,
		"value":           req.Value,
		"max_uses":        req.MaxUses,
		"starts_at":       req.StartsAt,
		"expires_at":      req.ExpiresAt,
		"min_order_value": req.MinOrderValue,
		"is_active":       req.IsActive,
	}
	if err := s.db.Model(&coupon).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return &coupon, nil
}

func (s *CouponService) DeleteCoupon(id uuid.UUID) error {
	result := s.db.Delete(&models.Coupon{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("coupon not found")
	}
	return nil
}

func (s *CouponService) findActiveByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.Where("code = ? AND is_active = ?", normalizeCode(code), true).
		First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// internal/services/coupon_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }

func TestEvaluateCouponRuleOrder(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("not yet started", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:         "FUTURO",
			DiscountType: models.DiscountTypePercentage,
			Value:        10,
			StartsAt:     timePtr(now.Add(24 * time.Hour)),
			// Expired too, but the start check runs first.
			ExpiresAt: timePtr(now.Add(-24 * time.Hour)),
		}
		v := EvaluateCoupon(coupon, 200, now)
		assert.False(t, v.Valid)
		assert.Equal(t, i18n.KeyCouponNotStarted, v.MessageKey)
	})

	t.Run("expired", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:         "PASSADO",
			DiscountType: models.DiscountTypePercentage,
			Value:        10,
			ExpiresAt:    timePtr(now.Add(-time.Hour)),
			MaxUses:      intPtr(1),
			UsedCount:    1,
		}
		v := EvaluateCoupon(coupon, 200, now)
		assert.False(t, v.Valid)
		assert.Equal(t, i18n.KeyCouponExpired, v.MessageKey)
	})

	t.Run("usage cap exhausted", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:          "ESGOTADO",
			DiscountType:  models.DiscountTypePercentage,
			Value:         10,
			MaxUses:       intPtr(50),
			UsedCount:     50,
			MinOrderValue: 500,
		}
		v := EvaluateCoupon(coupon, 200, now)
		assert.False(t, v.Valid)
		assert.Equal(t, i18n.KeyCouponUsageLimit, v.MessageKey)
	})

	t.Run("below minimum order", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:          "BEMVINDA10",
			DiscountType:  models.DiscountTypePercentage,
			Value:         10,
			MinOrderValue: 100,
		}
		v := EvaluateCoupon(coupon, 50, now)
		assert.False(t, v.Valid)
		assert.Equal(t, i18n.KeyCouponMinOrder, v.MessageKey)
		require.Len(t, v.MessageArgs, 1)
		assert.Equal(t, "R$ 100,00", v.MessageArgs[0])
	})
}

func TestEvaluateCouponDiscounts(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("percentage", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:          "BEMVINDA10",
			DiscountType:  models.DiscountTypePercentage,
			Value:         10,
			MinOrderValue: 100,
		}
		v := EvaluateCoupon(coupon, 200, now)
		assert.True(t, v.Valid)
		assert.Equal(t, 20.00, v.Discount)
		assert.Equal(t, coupon, v.Coupon)
	})

	t.Run("fixed", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:         "MENOS30",
			DiscountType: models.DiscountTypeFixed,
			Value:        30,
		}
		v := EvaluateCoupon(coupon, 200, now)
		assert.True(t, v.Valid)
		assert.Equal(t, 30.00, v.Discount)
	})

	t.Run("fixed capped at order total", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:         "MENOS30",
			DiscountType: models.DiscountTypeFixed,
			Value:        30,
		}
		v := EvaluateCoupon(coupon, 20, now)
		assert.True(t, v.Valid)
		assert.Equal(t, 20.00, v.Discount)
	})

	t.Run("exactly at minimum order", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:          "BEMVINDA10",
			DiscountType:  models.DiscountTypePercentage,
			Value:         10,
			MinOrderValue: 100,
		}
		v := EvaluateCoupon(coupon, 100, now)
		assert.True(t, v.Valid)
		assert.Equal(t, 10.00, v.Discount)
	})

	t.Run("boundary timestamps accepted", func(t *testing.T) {
		coupon := &models.Coupon{
			Code:         "AGORA",
			DiscountType: models.DiscountTypePercentage,
			Value:        5,
			StartsAt:     timePtr(now),
			ExpiresAt:    timePtr(now),
		}
		v := EvaluateCoupon(coupon, 100, now)
		assert.True(t, v.Valid)
	})
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "BEMVINDA10", normalizeCode("  bemvinda10 "))
	assert.Equal(t, "MENOS30", normalizeCode("Menos30"))
}

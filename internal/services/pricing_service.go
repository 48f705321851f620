// internal/services/pricing_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

const defaultPreviewLimit = 10

// PricingService owns the mass discount operation: a uniform percentage cut
// applied across the active catalog, recording each pre-discount price as the
// new original price for the storefront badge.
type PricingService struct {
	db        *gorm.DB
	updater   priceUpdater
	chunkSize int
}

// priceUpdater is the single write the batch loop needs. Kept narrow so the
// partial-failure behavior can be exercised without a database.
type priceUpdater interface {
	UpdateProductPrice(ctx context.Context, id uuid.UUID, newPrice, originalPrice float64) error
}

type DiscountPreviewItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	OldPrice  float64   `json:"old_price"`
	NewPrice  float64   `json:"new_price"`
	BelowCost bool      `json:"below_cost"`
}

type MassDiscountError struct {
	ProductID uuid.UUID `json:"product_id"`
	Message   string    `json:"message"`
}

// MassDiscountResult reports the best-effort outcome: Success is true only
// when every row updated, failed rows are listed for re-invocation, and
// below-cost products are flagged for manual review.
type MassDiscountResult struct {
	Success           bool                  `json:"success"`
	UpdatedCount      int                   `json:"updated_count"`
	Errors            []MassDiscountError   `json:"errors,omitempty"`
	BelowCostWarnings []DiscountPreviewItem `json:"below_cost_warnings,omitempty"`
}

func NewPricingService(db *gorm.DB, chunkSize int) *PricingService {
	if chunkSize < 1 {
		chunkSize = 50
	}
	return &PricingService{
		db:        db,
		updater:   &gormPriceUpdater{db: db},
		chunkSize: chunkSize,
	}
}

// DiscountedPrice applies percent off and rounds half-up to 2 decimals.
func DiscountedPrice(price, percent float64) float64 {
	return utils.RoundMoney(price * (1 - percent/100))
}

// isBelowCost flags a new price under the product's cost. Unknown cost never
// flags.
func isBelowCost(product *models.Product, newPrice float64) bool {
	return product.CostPrice != nil && newPrice < *product.CostPrice
}

// PreviewDiscount returns up to limit rows showing what the discount would do,
// without writing anything.
func PreviewDiscount(products []models.Product, percent float64, limit int) ([]DiscountPreviewItem, error) {
	if err := validatePercent(percent); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPreviewLimit
	}

	items := make([]DiscountPreviewItem, 0, limit)
	for i := range products {
		if len(items) == limit {
			break
		}
		p := &products[i]
		newPrice := DiscountedPrice(p.Price, percent)
		items = append(items, DiscountPreviewItem{
			ProductID: p.ID,
			Name:      p.Name,
			OldPrice:  p.Price,
			NewPrice:  newPrice,
			BelowCost: isBelowCost(p, newPrice),
		})
	}
	return items, nil
}

// Preview loads the active catalog and renders the preview rows.
func (s *PricingService) Preview(ctx context.Context, percent float64, limit int) ([]DiscountPreviewItem, error) {
	products, err := s.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	return PreviewDiscount(products, percent, limit)
}

// ApplyMassDiscount applies percent off to every active product. Products are
// processed in fixed-size chunks; each row is updated independently and a
// failure never aborts the batch. There is deliberately no transaction across
// the operation: rerunning after a partial failure is the recovery path.
func (s *PricingService) ApplyMassDiscount(ctx context.Context, percent float64) (*MassDiscountResult, error) {
	if err := validatePercent(percent); err != nil {
		return nil, err
	}

	products, err := s.activeProducts(ctx)
	if err != nil {
		return nil, err
	}

	result := applyDiscountBatch(ctx, products, percent, s.updater, s.chunkSize)

	logrus.WithFields(logrus.Fields{
		"percent":    percent,
		"updated":    result.UpdatedCount,
		"errors":     len(result.Errors),
		"below_cost": len(result.BelowCostWarnings),
	}).Info("Mass discount applied")

	return result, nil
}

// applyDiscountBatch is the chunked best-effort loop, separated from the
// service so it can run against a fake updater.
func applyDiscountBatch(ctx context.Context, products []models.Product, percent float64, updater priceUpdater, chunkSize int) *MassDiscountResult {
	result := &MassDiscountResult{}

	for start := 0; start < len(products); start += chunkSize {
		end := start + chunkSize
		if end > len(products) {
			end = len(products)
		}

		for i := start; i < end; i++ {
			p := &products[i]
			oldPrice := p.Price
			newPrice := DiscountedPrice(oldPrice, percent)

			if err := updater.UpdateProductPrice(ctx, p.ID, newPrice, oldPrice); err != nil {
				result.Errors = append(result.Errors, MassDiscountError{
					ProductID: p.ID,
					Message:   err.Error(),
				})
				continue
			}

			result.UpdatedCount++
			if isBelowCost(p, newPrice) {
				result.BelowCostWarnings = append(result.BelowCostWarnings, DiscountPreviewItem{
					ProductID: p.ID,
					Name:      p.Name,
					OldPrice:  oldPrice,
					NewPrice:  newPrice,
					BelowCost: true,
				})
			}
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}

func (s *PricingService) activeProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active products: %w", err)
	}
	return products, nil
}

func validatePercent(percent float64) error {
	if percent <= 0 || percent > 100 {
		return errors.New("discount percent must be in (0, 100]")
	}
	return nil
}

type gormPriceUpdater struct {
	db *gorm.DB
}

func (u *gormPriceUpdater) UpdateProductPrice(ctx context.Context, id uuid.UUID, newPrice, originalPrice float64) error {
	return u.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"price":          newPrice,
			"original_price": originalPrice,
		}).Error
}

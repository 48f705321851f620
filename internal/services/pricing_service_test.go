// internal/services/pricing_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluracouro/allura-backend/internal/models"
)

// fakePriceUpdater records every write and fails the IDs it is told to.
type fakePriceUpdater struct {
	calls  []priceUpdate
	failOn map[uuid.UUID]error
}

type priceUpdate struct {
	id            uuid.UUID
	newPrice      float64
	originalPrice float64
}

func (f *fakePriceUpdater) UpdateProductPrice(_ context.Context, id uuid.UUID, newPrice, originalPrice float64) error {
	if err, ok := f.failOn[id]; ok {
		return err
	}
	f.calls = append(f.calls, priceUpdate{id: id, newPrice: newPrice, originalPrice: originalPrice})
	return nil
}

func makeProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Name:      "Produto",
			Price:     100,
			IsActive:  true,
		}
	}
	return products
}

func floatPtr(v float64) *float64 { return &v }

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 80.00, DiscountedPrice(100, 20))
	assert.Equal(t, 254.92, DiscountedPrice(299.90, 15))
	assert.Equal(t, 0.00, DiscountedPrice(100, 100))
}

func TestApplyDiscountBatchAllSucceed(t *testing.T) {
	products := makeProducts(7)
	updater := &fakePriceUpdater{}

	result := applyDiscountBatch(context.Background(), products, 20, updater, 3)

	assert.True(t, result.Success)
	assert.Equal(t, 7, result.UpdatedCount)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.BelowCostWarnings)

	require.Len(t, updater.calls, 7)
	for _, call := range updater.calls {
		assert.Equal(t, 80.00, call.newPrice)
		assert.Equal(t, 100.00, call.originalPrice)
	}
}

func TestApplyDiscountBatchPartialFailure(t *testing.T) {
	products := makeProducts(5)
	updater := &fakePriceUpdater{
		failOn: map[uuid.UUID]error{
			products[1].ID: errors.New("deadlock detected"),
			products[3].ID: errors.New("connection reset"),
		},
	}

	result := applyDiscountBatch(context.Background(), products, 10, updater, 2)

	// A failed row never aborts the batch; the rest still update.
	assert.False(t, result.Success)
	assert.Equal(t, 3, result.UpdatedCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, products[1].ID, result.Errors[0].ProductID)
	assert.Equal(t, "deadlock detected", result.Errors[0].Message)
	assert.Equal(t, products[3].ID, result.Errors[1].ProductID)
}

func TestApplyDiscountBatchBelowCostWarning(t *testing.T) {
	products := makeProducts(3)
	products[0].CostPrice = floatPtr(90) // 20% off 100 lands at 80, under cost
	products[1].CostPrice = floatPtr(70) // stays above cost
	// products[2] has no cost price and must never be flagged

	updater := &fakePriceUpdater{}
	result := applyDiscountBatch(context.Background(), products, 20, updater, 50)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.UpdatedCount)
	require.Len(t, result.BelowCostWarnings, 1)

	warning := result.BelowCostWarnings[0]
	assert.Equal(t, products[0].ID, warning.ProductID)
	assert.Equal(t, 100.00, warning.OldPrice)
	assert.Equal(t, 80.00, warning.NewPrice)
	assert.True(t, warning.BelowCost)
}

func TestApplyDiscountBatchChunking(t *testing.T) {
	// 120 products with a chunk size of 50 walk chunks of 50, 50 and 20.
	products := makeProducts(120)
	updater := &fakePriceUpdater{}

	result := applyDiscountBatch(context.Background(), products, 5, updater, 50)

	assert.True(t, result.Success)
	assert.Equal(t, 120, result.UpdatedCount)
	require.Len(t, updater.calls, 120)
	// Order within and across chunks follows the input order.
	for i, call := range updater.calls {
		assert.Equal(t, products[i].ID, call.id)
	}
}

func TestApplyDiscountBatchEmptyCatalog(t *testing.T) {
	updater := &fakePriceUpdater{}
	result := applyDiscountBatch(context.Background(), nil, 10, updater, 50)

	assert.True(t, result.Success)
	assert.Zero(t, result.UpdatedCount)
	assert.Empty(t, updater.calls)
}

func TestPreviewDiscount(t *testing.T) {
	products := makeProducts(15)
	products[0].CostPrice = floatPtr(95)

	items, err := PreviewDiscount(products, 10, 5)
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, 100.00, items[0].OldPrice)
	assert.Equal(t, 90.00, items[0].NewPrice)
	assert.True(t, items[0].BelowCost)
	assert.False(t, items[1].BelowCost)
}

func TestPreviewDiscountDefaultLimit(t *testing.T) {
	items, err := PreviewDiscount(makeProducts(30), 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, defaultPreviewLimit)
}

func TestPreviewDiscountInvalidPercent(t *testing.T) {
	_, err := PreviewDiscount(makeProducts(1), 0, 10)
	assert.Error(t, err)

	_, err = PreviewDiscount(makeProducts(1), 101, 10)
	assert.Error(t, err)

	_, err = PreviewDiscount(makeProducts(1), -5, 10)
	assert.Error(t, err)
}

// internal/utils/money_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.56, RoundMoney(10.555))
	assert.Equal(t, 10.55, RoundMoney(10.554))
	assert.Equal(t, 80.0, RoundMoney(100*0.8))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, -10.56, RoundMoney(-10.555))
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{9.9, "R$ 9,90"},
		{100, "R$ 100,00"},
		{1234.5, "R$ 1.234,50"},
		{1234567.89, "R$ 1.234.567,89"},
		{-42.1, "-R$ 42,10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.value))
	}
}

func TestFormatInstallment(t *testing.T) {
	assert.Equal(t, "3x R$ 100,00", FormatInstallment(300, 3))
	assert.Equal(t, "10x R$ 129,99", FormatInstallment(1299.90, 10))
	// installments below 1 are clamped
	assert.Equal(t, "1x R$ 50,00", FormatInstallment(50, 0))
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 20, DiscountPercent(100, 80))
	assert.Equal(t, 33, DiscountPercent(299.90, 199.90))
	assert.Equal(t, 0, DiscountPercent(100, 100))
	assert.Equal(t, 0, DiscountPercent(100, 120))
	assert.Equal(t, 0, DiscountPercent(0, 50))
}

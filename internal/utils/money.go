// internal/utils/money.go
package utils

import (
	"fmt"
	"math"
	"strings"
)

// RoundMoney rounds to 2 decimal places, half away from zero.
func RoundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatBRL renders a value in Brazilian currency notation, e.g. 1234.5 ->
// "R$ 1.234,50".
func FormatBRL(value float64) string {
	negative := value < 0
	cents := int64(math.Round(math.Abs(value) * 100))

	intPart := cents / 100
	fracPart := cents % 100

	digits := fmt.Sprintf("%d", intPart)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), fracPart)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatInstallment renders the interest-free installment line shown on
// product cards, e.g. (300, 3) -> "3x R$ 100,00".
func FormatInstallment(total float64, installments int) string {
	if installments < 1 {
		installments = 1
	}
	per := RoundMoney(total / float64(installments))
	return fmt.Sprintf("%dx %s", installments, FormatBRL(per))
}

// DiscountPercent returns the rounded badge percentage for a discounted
// product, or 0 when no discount applies.
func DiscountPercent(originalPrice, price float64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round((1 - price/originalPrice) * 100))
}

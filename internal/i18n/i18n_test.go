// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestI18n(t *testing.T) *I18n {
	t.Helper()
	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  "pt_BR",
	}
	require.NoError(t, i.LoadTranslations("./locales"))
	return i
}

func TestTranslation(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "Cupom inválido ou inativo", i.T("pt_BR", KeyCouponNotFound))
	assert.Equal(t, "Invalid or inactive coupon", i.T("en", KeyCouponNotFound))
}

func TestTranslationWithArgs(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "Pedido mínimo de R$ 100,00 para usar este cupom",
		i.T("pt_BR", KeyCouponMinOrder, "R$ 100,00"))
	assert.Equal(t, "Desconto aplicado a 42 produtos",
		i.T("pt_BR", KeyPricingApplied, 42))
}

func TestTranslationFallsBackToPortuguese(t *testing.T) {
	i := newTestI18n(t)

	// Unsupported language falls back to the default locale.
	assert.Equal(t, "Cupom inválido ou inativo", i.T("fr", KeyCouponNotFound))
}

func TestTranslationUnknownKeyReturnsKey(t *testing.T) {
	i := newTestI18n(t)
	assert.Equal(t, "no.such.key", i.T("pt_BR", "no.such.key"))
}

func TestGlobalTBeforeInitialize(t *testing.T) {
	// Without Initialize the package-level T degrades to echoing the key.
	assert.NotEmpty(t, T("pt_BR", KeyCouponExpired))
}

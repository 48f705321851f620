// internal/gateway/stripe_test.go
package gateway

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluracouro/allura-backend/internal/models"
)

func TestStripeParseRedirectParams(t *testing.T) {
	provider := NewStripeProvider("sk_test_123", "https://allura.com.br/pedido/{ORDER_ID}/sucesso", "https://allura.com.br/pedido/{ORDER_ID}/cancelado")
	assert.Equal(t, models.PaymentProviderStripe, provider.Name())

	t.Run("explicit success statuses settle", func(t *testing.T) {
		for _, status := range []string{"success", "complete", "SUCCESS"} {
			params := url.Values{}
			params.Set("session_id", "cs_test_abc")
			params.Set("status", status)

			result, err := provider.ParseRedirectParams(params)
			require.NoError(t, err)
			assert.True(t, result.Paid, "status %q should settle", status)
			assert.Equal(t, "cs_test_abc", result.TransactionID)
		}
	})

	t.Run("session id alone does not settle", func(t *testing.T) {
		params := url.Values{}
		params.Set("session_id", "cs_test_abc")

		result, err := provider.ParseRedirectParams(params)
		require.NoError(t, err)
		assert.False(t, result.Paid)
		assert.Equal(t, "cs_test_abc", result.TransactionID)
	})

	t.Run("cancelled status stays unpaid", func(t *testing.T) {
		params := url.Values{}
		params.Set("session_id", "cs_test_abc")
		params.Set("status", "cancelled")

		result, err := provider.ParseRedirectParams(params)
		require.NoError(t, err)
		assert.False(t, result.Paid)
	})

	t.Run("missing session id", func(t *testing.T) {
		_, err := provider.ParseRedirectParams(url.Values{"status": {"success"}})
		assert.Error(t, err)
	})
}

// internal/gateway/infinitepay_test.go
package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluracouro/allura-backend/internal/models"
)

func TestInfinitePayCreateCheckoutLink(t *testing.T) {
	provider := NewInfinitePayProvider("allura", "https://allura.com.br/pedido/retorno")

	link, err := provider.CreateCheckoutLink(context.Background(), &CheckoutRequest{
		OrderID:   uuid.New(),
		Reference: "ALR-2026-0042",
		Items: []CheckoutItem{
			{Name: "Bolsa Tote Couro", UnitPrice: 299.90, Quantity: 1},
			{Name: "Carteira Slim", UnitPrice: 89.90, Quantity: 2},
		},
		Total: 479.70,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentProviderInfinitePay, link.Provider)
	assert.Equal(t, "ALR-2026-0042", link.Reference)
	assert.True(t, strings.HasPrefix(link.URL, "https://checkout.infinitepay.io/allura?"))

	parsed, err := url.Parse(link.URL)
	require.NoError(t, err)
	query := parsed.Query()

	assert.Equal(t, "ALR-2026-0042", query.Get("order_nsu"))
	assert.Equal(t, "https://allura.com.br/pedido/retorno", query.Get("redirect_url"))

	// Prices travel as centavos inside the JSON-encoded item list.
	var items []infinitePayItem
	require.NoError(t, json.Unmarshal([]byte(query.Get("items")), &items))
	require.Len(t, items, 2)
	assert.Equal(t, infinitePayItem{Name: "Bolsa Tote Couro", Price: 29990, Quantity: 1}, items[0])
	assert.Equal(t, infinitePayItem{Name: "Carteira Slim", Price: 8990, Quantity: 2}, items[1])
}

func TestInfinitePayCreateCheckoutLinkNoItems(t *testing.T) {
	provider := NewInfinitePayProvider("allura", "https://allura.com.br/retorno")
	_, err := provider.CreateCheckoutLink(context.Background(), &CheckoutRequest{Reference: "ALR-1"})
	assert.Error(t, err)
}

func TestInfinitePayParseRedirectParams(t *testing.T) {
	provider := NewInfinitePayProvider("allura", "https://allura.com.br/retorno")

	t.Run("paid statuses", func(t *testing.T) {
		for _, status := range []string{"success", "paid", "approved", "SUCCESS"} {
			params := url.Values{}
			params.Set("transaction_id", "txn_123")
			params.Set("order_nsu", "ALR-1")
			params.Set("status", status)

			result, err := provider.ParseRedirectParams(params)
			require.NoError(t, err)
			assert.True(t, result.Paid, "status %q should settle", status)
			assert.Equal(t, "txn_123", result.TransactionID)
			assert.Equal(t, "ALR-1", result.OrderNSU)
		}
	})

	t.Run("unpaid status", func(t *testing.T) {
		params := url.Values{}
		params.Set("order_nsu", "ALR-1")
		params.Set("status", "failed")

		result, err := provider.ParseRedirectParams(params)
		require.NoError(t, err)
		assert.False(t, result.Paid)
		assert.Equal(t, "failed", result.Status)
	})

	t.Run("order_nsu alone identifies the charge", func(t *testing.T) {
		params := url.Values{}
		params.Set("order_nsu", "ALR-1")

		result, err := provider.ParseRedirectParams(params)
		require.NoError(t, err)
		assert.Equal(t, "ALR-1", result.OrderNSU)
	})

	t.Run("no reference at all", func(t *testing.T) {
		_, err := provider.ParseRedirectParams(url.Values{"status": {"paid"}})
		assert.Error(t, err)
	})
}

func TestToCentavos(t *testing.T) {
	assert.Equal(t, int64(29990), toCentavos(299.90))
	assert.Equal(t, int64(10), toCentavos(0.1))
	assert.Equal(t, int64(0), toCentavos(0))
	// Half a centavo rounds up, never truncates.
	assert.Equal(t, int64(100), toCentavos(0.999))
}

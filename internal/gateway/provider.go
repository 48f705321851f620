// internal/gateway/provider.go
package gateway

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/alluracouro/allura-backend/internal/models"
)

// CheckoutItem is one purchasable line forwarded to a gateway.
type CheckoutItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// CheckoutRequest is the provider-neutral view of an order ready for payment.
type CheckoutRequest struct {
	OrderID       uuid.UUID
	Reference     string
	CustomerEmail string
	CustomerName  string
	Items         []CheckoutItem
	Total         float64
}

// CheckoutLink is what a provider hands back: a hosted URL the customer is
// redirected to, plus the reference used to reconcile the callback.
type CheckoutLink struct {
	URL       string                 `json:"url"`
	Provider  models.PaymentProvider `json:"provider"`
	Reference string                 `json:"reference"`
}

// RedirectResult carries the parsed return-redirect query parameters.
type RedirectResult struct {
	TransactionID string `json:"transaction_id,omitempty"`
	OrderNSU      string `json:"order_nsu,omitempty"`
	Status        string `json:"status"`
	Paid          bool   `json:"paid"`
}

// CheckoutProvider is the capability boundary between checkout and a specific
// payment gateway. Implementations are swappable; the gateway remains the
// source of truth for payment state.
type CheckoutProvider interface {
	Name() models.PaymentProvider
	CreateCheckoutLink(ctx context.Context, req *CheckoutRequest) (*CheckoutLink, error)
	ParseRedirectParams(params url.Values) (*RedirectResult, error)
}

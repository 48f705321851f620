// internal/gateway/infinitepay.go
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/alluracouro/allura-backend/internal/models"
)

const infinitePayBaseURL = "https://checkout.infinitepay.io"

// InfinitePayProvider builds hosted checkout links for InfinitePay. The item
// list travels JSON-encoded inside the query string; prices are sent in
// centavos.
type InfinitePayProvider struct {
	handle      string
	redirectURL string
}

type infinitePayItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

func NewInfinitePayProvider(handle, redirectURL string) *InfinitePayProvider {
	return &InfinitePayProvider{
		handle:      handle,
		redirectURL: redirectURL,
	}
}

func (p *InfinitePayProvider) Name() models.PaymentProvider {
	return models.PaymentProviderInfinitePay
}

func (p *InfinitePayProvider) CreateCheckoutLink(ctx context.Context, req *CheckoutRequest) (*CheckoutLink, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}

	items := make([]infinitePayItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, infinitePayItem{
			Name:     item.Name,
			Price:    toCentavos(item.UnitPrice),
			Quantity: item.Quantity,
		})
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout items: %w", err)
	}

	query := url.Values{}
	query.Set("items", string(encoded))
	query.Set("order_nsu", req.Reference)
	query.Set("redirect_url", p.redirectURL)

	return &CheckoutLink{
		URL:       fmt.Sprintf("%s/%s?%s", infinitePayBaseURL, p.handle, query.Encode()),
		Provider:  models.PaymentProviderInfinitePay,
		Reference: req.Reference,
	}, nil
}

// ParseRedirectParams reads the return redirect: either transaction_id or
// order_nsu identifies the charge, and status tells whether it settled.
func (p *InfinitePayProvider) ParseRedirectParams(params url.Values) (*RedirectResult, error) {
	transactionID := params.Get("transaction_id")
	orderNSU := params.Get("order_nsu")
	if transactionID == "" && orderNSU == "" {
		return nil, fmt.Errorf("redirect params carry no transaction reference")
	}

	status := strings.ToLower(params.Get("status"))
	return &RedirectResult{
		TransactionID: transactionID,
		OrderNSU:      orderNSU,
		Status:        status,
		Paid:          status == "success" || status == "paid" || status == "approved",
	}, nil
}

// toCentavos converts a BRL amount into the smallest currency unit.
func toCentavos(value float64) int64 {
	return int64(math.Round(value * 100))
}

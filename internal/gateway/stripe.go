// internal/gateway/stripe.go
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"

	"github.com/alluracouro/allura-backend/internal/models"
)

// StripeProvider creates hosted Checkout Sessions. The customer is looked up
// by email and implicitly created on first checkout; line items are built
// dynamically from the cart in centavos.
type StripeProvider struct {
	successURL string
	cancelURL  string
}

// NewStripeProvider expects success/cancel URL templates containing an
// {ORDER_ID} placeholder.
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (p *StripeProvider) Name() models.PaymentProvider {
	return models.PaymentProviderStripe
}

func (p *StripeProvider) CreateCheckoutLink(ctx context.Context, req *CheckoutRequest) (*CheckoutLink, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}

	customerID, err := p.findOrCreateCustomer(req.CustomerEmail, req.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stripe customer: %w", err)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyBRL)),
				UnitAmount:  stripe.Int64(toCentavos(item.UnitPrice)),
				ProductData: productData,
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	orderID := req.OrderID.String()
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(strings.ReplaceAll(p.successURL, "{ORDER_ID}", orderID)),
		CancelURL:  stripe.String(strings.ReplaceAll(p.cancelURL, "{ORDER_ID}", orderID)),
	}
	params.AddMetadata("order_id", orderID)
	params.AddMetadata("order_reference", req.Reference)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutLink{
		URL:       sess.URL,
		Provider:  models.PaymentProviderStripe,
		Reference: sess.ID,
	}, nil
}

// ParseRedirectParams reads the session_id Stripe appends to the success URL.
// A session id alone is not proof of payment; only an explicit success status
// flags the payment as settled.
func (p *StripeProvider) ParseRedirectParams(params url.Values) (*RedirectResult, error) {
	sessionID := params.Get("session_id")
	if sessionID == "" {
		return nil, fmt.Errorf("redirect params carry no session id")
	}

	status := strings.ToLower(params.Get("status"))
	return &RedirectResult{
		TransactionID: sessionID,
		Status:        status,
		Paid:          status == "success" || status == "complete",
	}, nil
}

func (p *StripeProvider) findOrCreateCustomer(email, name string) (string, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Filters.AddFilter("limit", "", "1")

	iter := customer.List(listParams)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	created, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

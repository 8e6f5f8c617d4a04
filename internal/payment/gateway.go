// Package payment creates hosted checkout sessions with the payment provider.
package payment

import "context"

const (
	ModePayment       = "payment"
	PaymentMethodCard = "card"
)

// LineItem is one priced line shown on the hosted checkout page. UnitAmount is
// in minor currency units.
type LineItem struct {
	Name       string
	Currency   string
	UnitAmount int64
	Quantity   int64
}

type CheckoutRequest struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// Session is the provider's answer to a checkout request. PaymentIntentID is
// nil when the provider has not attached a payment intent yet.
type Session struct {
	ID              string
	URL             string
	PaymentIntentID *string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
)

type StripeConfig struct {
	SecretKey string
	// APIURL overrides the Stripe API host. Empty means the public API.
	APIURL  string
	Timeout time.Duration
	Logger  *log.Logger
}

type stripeGateway struct {
	sessions session.Client
	timeout  time.Duration
	logger   *log.Logger
}

// NewStripe builds a Gateway backed by Stripe Checkout. Network retries are
// disabled and every call is bounded by cfg.Timeout.
func NewStripe(cfg StripeConfig) Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripe.String(cfg.APIURL)
	}
	return &stripeGateway{
		sessions: session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("checkout session without line items: %w", domain.ErrInvalidInput)
	}
	if g.sessions.Key == "" {
		return nil, fmt.Errorf("%w: stripe secret key not configured", domain.ErrGateway)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{PaymentMethodCard}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems:          toStripeLineItems(req.LineItems),
	}
	params.Context = ctx

	start := time.Now()
	s, err := g.sessions.New(params)
	if err != nil {
		g.logger.Printf("stripe: create checkout session failed after %s: %v", time.Since(start).Truncate(time.Millisecond), err)
		return nil, classify(ctx, err)
	}

	out := &Session{ID: s.ID, URL: s.URL}
	if s.PaymentIntent != nil && s.PaymentIntent.ID != "" {
		id := s.PaymentIntent.ID
		out.PaymentIntentID = &id
	}
	g.logger.Printf("stripe: checkout session id=%s lines=%d in %s", out.ID, len(req.LineItems), time.Since(start).Truncate(time.Millisecond))
	return out, nil
}

func toStripeLineItems(items []LineItem) []*stripe.CheckoutSessionLineItemParams {
	out := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		out = append(out, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(it.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}
	return out
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrGatewayTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", domain.ErrGatewayTimeout, err)
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%w: stripe %s (status %d): %s", domain.ErrGateway, stripeErr.Type, stripeErr.HTTPStatusCode, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %w", domain.ErrGateway, err)
}

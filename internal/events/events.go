// Package events publishes order lifecycle events for downstream consumers.
package events

import (
	"context"
	"time"
)

// OrderPlaced is emitted once per accepted checkout. Reference groups the
// orders created by that checkout.
type OrderPlaced struct {
	Reference       string      `json:"reference"`
	PaymentIntentID *string     `json:"payment_intent_id,omitempty"`
	CartID          string      `json:"cart_id"`
	Lines           []OrderLine `json:"lines"`
	PlacedAt        time.Time   `json:"placed_at"`
}

type OrderLine struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Publisher interface {
	OrderPlaced(ctx context.Context, evt OrderPlaced) error
	Close() error
}

type nopPublisher struct{}

// Nop discards every event.
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) OrderPlaced(context.Context, OrderPlaced) error { return nil }
func (nopPublisher) Close() error                                    { return nil }

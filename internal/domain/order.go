package domain

import "time"

const PaymentStatusPending = "pending"

// Order records a purchase attempt for one product. Every order produced by a
// single checkout shares PaymentIntentID and CheckoutSessionID.
type Order struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	Quantity          int       `json:"quantity"`
	OrderedAt         time.Time `json:"orderedAt"`
	PaymentIntentID   *string   `json:"paymentIntentId,omitempty"`
	CheckoutSessionID string    `json:"checkoutSessionId"`
	PaymentStatus     string    `json:"paymentStatus"`
}

// OrderGroup is the set of orders bundled under one checkout reference.
type OrderGroup struct {
	Reference string  `json:"reference"`
	Orders    []Order `json:"orders"`
}

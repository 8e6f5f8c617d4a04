package order

import (
	"context"

	"storefront/internal/domain"
)

// Line is one order to persist from a cart item.
type Line struct {
	ProductID string
	Quantity  int
}

// CheckoutInput describes the orders produced by one accepted payment session.
type CheckoutInput struct {
	CartID            string
	Lines             []Line
	PaymentIntentID   *string
	CheckoutSessionID string
	// ClearCart deletes the cart's items in the same transaction.
	ClearCart bool
}

type Repository interface {
	CreateForCheckout(ctx context.Context, in CheckoutInput) ([]domain.Order, error)
	ListByReference(ctx context.Context, reference string) ([]domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, reference, status string) (int64, error)
}

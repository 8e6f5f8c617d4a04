package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error)
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	CountItems(ctx context.Context, cartID string) (int, error)
}

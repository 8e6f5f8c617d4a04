package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	Create(ctx context.Context) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error)
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	CountItems(ctx context.Context, cartID string) (int, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// GetOrCreate resolves the cart a session points at. A nil cartID creates a
// fresh cart and reports created=true. A cartID that no longer resolves
// returns domain.ErrNotFound rather than silently replacing the cart.
func (s *Service) GetOrCreate(ctx context.Context, cartID *string) (*domain.Cart, bool, error) {
	if cartID == nil {
		cart, err := s.repo.Create(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("create cart: %w", err)
		}
		return cart, true, nil
	}
	cart, err := s.repo.GetByID(ctx, *cartID)
	if err != nil {
		return nil, false, err
	}
	return cart, false, nil
}

func (s *Service) AddItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product id required", domain.ErrInvalidInput)
	}
	if s.productRepo == nil {
		return nil, errors.New("product repository unavailable")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.AddItem(ctx, cartID, productID)
}

func (s *Service) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	return s.repo.ListItems(ctx, cartID)
}

// RemoveItem deletes a cart item by id. Ownership is not checked.
func (s *Service) RemoveItem(ctx context.Context, itemID string) error {
	return s.repo.RemoveItem(ctx, itemID)
}

// CountItems returns the number of distinct items in the cart, or 0 when the
// session has no cart or its cart no longer exists.
func (s *Service) CountItems(ctx context.Context, cartID *string) (int, error) {
	if cartID == nil {
		return 0, nil
	}
	n, err := s.repo.CountItems(ctx, *cartID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	return n, err
}

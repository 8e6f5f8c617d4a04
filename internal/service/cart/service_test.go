package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	createCart   *domain.Cart
	createErr    error
	createCalls  int
	getByID      *domain.Cart
	getByIDErr   error
	lastGetID    string
	addItem      *domain.CartItem
	addErr       error
	lastAddCart  string
	lastAddProd  string
	items        []domain.CartItem
	listErr      error
	removeErr    error
	lastRemoveID string
	count        int
	countErr     error
}

func (s *stubRepo) Create(_ context.Context) (*domain.Cart, error) {
	s.createCalls++
	return s.createCart, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Cart, error) {
	s.lastGetID = id
	return s.getByID, s.getByIDErr
}

func (s *stubRepo) AddItem(_ context.Context, cartID, productID string) (*domain.CartItem, error) {
	s.lastAddCart = cartID
	s.lastAddProd = productID
	return s.addItem, s.addErr
}

func (s *stubRepo) ListItems(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, s.listErr
}

func (s *stubRepo) RemoveItem(_ context.Context, itemID string) error {
	s.lastRemoveID = itemID
	return s.removeErr
}

func (s *stubRepo) CountItems(_ context.Context, _ string) (int, error) {
	return s.count, s.countErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
	lastID  string
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

func strPtr(v string) *string {
	return &v
}

func TestServiceGetOrCreateNilCreates(t *testing.T) {
	expected := &domain.Cart{ID: "c1"}
	repo := &stubRepo{createCart: expected}
	svc := New(repo, &stubProductRepo{})
	got, created, err := svc.GetOrCreate(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || got != expected || repo.createCalls != 1 {
		t.Fatalf("expected new cart, got %+v created=%v calls=%d", got, created, repo.createCalls)
	}
}

func TestServiceGetOrCreateExisting(t *testing.T) {
	expected := &domain.Cart{ID: "c1"}
	repo := &stubRepo{getByID: expected}
	svc := New(repo, &stubProductRepo{})
	got, created, err := svc.GetOrCreate(context.Background(), strPtr("c1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || got != expected || repo.createCalls != 0 {
		t.Fatalf("expected existing cart, got %+v created=%v", got, created)
	}
	if repo.lastGetID != "c1" {
		t.Fatalf("unexpected lookup id %q", repo.lastGetID)
	}
}

func TestServiceGetOrCreateUnresolvedIsNotFound(t *testing.T) {
	repo := &stubRepo{getByIDErr: domain.ErrNotFound}
	svc := New(repo, &stubProductRepo{})
	_, _, err := svc.GetOrCreate(context.Background(), strPtr("gone"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no replacement cart")
	}
}

func TestServiceGetOrCreateCreateError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&stubRepo{createErr: boom}, &stubProductRepo{})
	_, _, err := svc.GetOrCreate(context.Background(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestServiceAddItemValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{})
	_, err := svc.AddItem(context.Background(), "c1", "  ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	svc = &Service{repo: &stubRepo{}}
	_, err = svc.AddItem(context.Background(), "c1", "p1")
	if err == nil || err.Error() != "product repository unavailable" {
		t.Fatalf("expected product repo error, got %v", err)
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProductRepo{err: domain.ErrNotFound})
	_, err := svc.AddItem(context.Background(), "c1", "p1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.lastAddCart != "" {
		t.Fatalf("expected no insert for unknown product")
	}
}

func TestServiceAddItemHappyPath(t *testing.T) {
	item := &domain.CartItem{ID: "i1", CartID: "c1", ProductID: "p1", Quantity: 1}
	repo := &stubRepo{addItem: item}
	products := &stubProductRepo{product: &domain.Product{ID: "p1"}}
	svc := New(repo, products)
	got, err := svc.AddItem(context.Background(), "c1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != item || repo.lastAddCart != "c1" || repo.lastAddProd != "p1" || products.lastID != "p1" {
		t.Fatalf("unexpected add: item=%+v cart=%s product=%s", got, repo.lastAddCart, repo.lastAddProd)
	}
}

func TestServiceRemoveItem(t *testing.T) {
	repo := &stubRepo{removeErr: domain.ErrNotFound}
	svc := New(repo, &stubProductRepo{})
	if err := svc.RemoveItem(context.Background(), "i1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.lastRemoveID != "i1" {
		t.Fatalf("unexpected remove id %q", repo.lastRemoveID)
	}
}

func TestServiceCountItems(t *testing.T) {
	svc := New(&stubRepo{count: 3}, &stubProductRepo{})
	n, err := svc.CountItems(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 for absent cart, got %d %v", n, err)
	}

	n, err = svc.CountItems(context.Background(), strPtr("c1"))
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d %v", n, err)
	}

	svc = New(&stubRepo{countErr: domain.ErrNotFound}, &stubProductRepo{})
	n, err = svc.CountItems(context.Background(), strPtr("gone"))
	if err != nil || n != 0 {
		t.Fatalf("expected 0 for unresolved cart, got %d %v", n, err)
	}

	boom := errors.New("boom")
	svc = New(&stubRepo{countErr: boom}, &stubProductRepo{})
	if _, err := svc.CountItems(context.Background(), strPtr("c1")); !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

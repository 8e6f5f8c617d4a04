package cart

import (
	"context"
	"errors"
	"os"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := setup(ctx, t)

	repo := NewPostgres(pool)
	created, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected cart %+v", created)
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("fetched mismatch %+v", fetched)
	}

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000009"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_AddItemTwiceIncrements(t *testing.T) {
	ctx := context.Background()
	pool := setup(ctx, t)
	productID := insertProduct(ctx, t, pool, "Prod A", "10.00")

	repo := NewPostgres(pool)
	cart, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := repo.AddItem(ctx, cart.ID, productID)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	second, err := repo.AddItem(ctx, cart.ID, productID)
	if err != nil {
		t.Fatalf("AddItem again: %v", err)
	}
	if first.ID != second.ID || second.Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v then %+v", first, second)
	}

	items, err := repo.ListItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].ProductName != "Prod A" {
		t.Fatalf("unexpected items %+v", items)
	}

	n, err := repo.CountItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestPostgres_AddItemUnknownProduct(t *testing.T) {
	ctx := context.Background()
	pool := setup(ctx, t)

	repo := NewPostgres(pool)
	cart, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = repo.AddItem(ctx, cart.ID, "00000000-0000-0000-0000-000000000001")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_ListItemsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	pool := setup(ctx, t)
	a := insertProduct(ctx, t, pool, "A", "1.00")
	b := insertProduct(ctx, t, pool, "B", "2.00")

	repo := NewPostgres(pool)
	cart, _ := repo.Create(ctx)
	for _, pid := range []string{b, a, b} {
		if _, err := repo.AddItem(ctx, cart.ID, pid); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	items, err := repo.ListItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != b || items[1].ProductID != a {
		t.Fatalf("unexpected order %+v", items)
	}
	if items[0].Quantity != 2 || items[1].Quantity != 1 {
		t.Fatalf("unexpected quantities %+v", items)
	}
}

func TestPostgres_RemoveItem(t *testing.T) {
	ctx := context.Background()
	pool := setup(ctx, t)
	pid := insertProduct(ctx, t, pool, "A", "1.00")

	repo := NewPostgres(pool)
	cart, _ := repo.Create(ctx)
	item, err := repo.AddItem(ctx, cart.ID, pid)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := repo.RemoveItem(ctx, item.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := repo.RemoveItem(ctx, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
	if err := repo.RemoveItem(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}
}

func TestPostgres_ConcurrentAddItem(t *testing.T) {
	ctx := context.Background()
	pool := setup(ctx, t)
	pid := insertProduct(ctx, t, pool, "Hot item", "5.00")

	repo := NewPostgres(pool)
	cart, err := repo.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const N = 50
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := repo.AddItem(gctx, cart.ID, pid)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem: %v", err)
	}

	items, err := repo.ListItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != N {
		t.Fatalf("expected one line with quantity %d, got %+v", N, items)
	}
}

func setup(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool := testPool(ctx, t)
	t.Cleanup(pool.Close)
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	return pool
}

func insertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name, price string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2::numeric, 10)
		RETURNING id::text
	`, name, price).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE orders, cart_items, carts, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

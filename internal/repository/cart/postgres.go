package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const pgForeignKeyViolation = "23503"

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context) (*domain.Cart, error) {
	const q = `
INSERT INTO carts DEFAULT VALUES
RETURNING id::text, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q).Scan(&cart.ID, &cart.CreatedAt); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT id::text, created_at
FROM carts
WHERE id = $1
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, id).Scan(&cart.ID, &cart.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem inserts a line with quantity 1 or increments the existing line for
// the same product. The upsert is a single statement, so concurrent adds for
// one (cart, product) pair never lose an increment.
func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	if !domain.ValidID(cartID) || !domain.ValidID(productID) {
		return nil, domain.ErrNotFound
	}
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, 1)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + 1
RETURNING id::text, cart_id::text, product_id::text, quantity, created_at
`
	var item domain.CartItem
	err := r.pool.QueryRow(ctx, q, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	if !domain.ValidID(cartID) {
		return nil, nil
	}
	const q = `
SELECT ci.id::text, ci.cart_id::text, ci.product_id::text, p.name, p.price::text, ci.quantity, ci.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC, ci.id ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item  domain.CartItem
			price string
		)
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.ProductName,
			&price,
			&item.Quantity,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, itemID string) error {
	if !domain.ValidID(itemID) {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1
`, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CountItems(ctx context.Context, cartID string) (int, error) {
	if !domain.ValidID(cartID) {
		return 0, nil
	}
	var n int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM cart_items
WHERE cart_id = $1
`, cartID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

package order

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const orderColumns = `id::text, product_id::text, quantity, ordered_at, payment_intent_id, checkout_session_id, payment_status`

func (r *postgresRepo) CreateForCheckout(ctx context.Context, in CheckoutInput) ([]domain.Order, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("no order lines: %w", domain.ErrInvalidInput)
	}
	if in.CheckoutSessionID == "" {
		return nil, fmt.Errorf("checkout session id required: %w", domain.ErrInvalidInput)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	q := `
INSERT INTO orders (product_id, quantity, payment_intent_id, checkout_session_id, payment_status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + orderColumns

	orders := make([]domain.Order, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity %d for product %s: %w", line.Quantity, line.ProductID, domain.ErrInvalidInput)
		}
		o, err := scanOrder(tx.QueryRow(ctx, q,
			line.ProductID,
			line.Quantity,
			in.PaymentIntentID,
			in.CheckoutSessionID,
			domain.PaymentStatusPending,
		))
		if err != nil {
			return nil, fmt.Errorf("insert order for product %s: %w", line.ProductID, err)
		}
		orders = append(orders, *o)
	}

	if in.ClearCart {
		if _, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1
`, in.CartID); err != nil {
			return nil, fmt.Errorf("clear cart %s: %w", in.CartID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByReference returns the orders stamped with a checkout session id or a
// payment intent id.
func (r *postgresRepo) ListByReference(ctx context.Context, reference string) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + `
FROM orders
WHERE checkout_session_id = $1 OR payment_intent_id = $1
ORDER BY ordered_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, reference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdatePaymentStatus sets the status of every order in a group and returns how
// many orders changed.
func (r *postgresRepo) UpdatePaymentStatus(ctx context.Context, reference, status string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET payment_status = $2
WHERE checkout_session_id = $1 OR payment_intent_id = $1
`, reference, status)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, domain.ErrNotFound
	}
	return cmd.RowsAffected(), nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.ProductID,
		&o.Quantity,
		&o.OrderedAt,
		&o.PaymentIntentID,
		&o.CheckoutSessionID,
		&o.PaymentStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type productWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

var demoProducts = []domain.Product{
	{
		Name:        "Demo T-Shirt",
		Description: "Soft cotton tee for demo purposes",
		Price:       decimal.RequireFromString("19.99"),
		Image:       "products/demo-tshirt.jpg",
		Stock:       25,
		Available:   true,
	},
	{
		Name:        "Demo Mug",
		Description: "Ceramic mug with demo logo",
		Price:       decimal.RequireFromString("12.99"),
		Image:       "products/demo-mug.jpg",
		Stock:       40,
		Available:   true,
	},
	{
		Name:        "Demo Sticker Pack",
		Description: "Five vinyl stickers",
		Price:       decimal.RequireFromString("3.50"),
		Stock:       100,
		Available:   true,
	},
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	return apply(ctx, productrepo.NewPostgres(pool, nil))
}

func apply(ctx context.Context, w productWriter) error {
	for _, p := range demoProducts {
		if _, err := w.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

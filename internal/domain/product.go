package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price carries two fractional digits.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MinorUnits converts a price to the smallest currency unit (cents).
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItem is one (product, quantity) line of a cart. ProductName and
// UnitPrice are read from the product when the item is listed.
type CartItem struct {
	ID          string          `json:"id"`
	CartID      string          `json:"cartId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"createdAt"`
}

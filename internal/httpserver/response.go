package httpserver

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type cartItemView struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	Items []cartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func toCartResponse(items []domain.CartItem) cartResponse {
	resp := cartResponse{Items: make([]cartItemView, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		resp.Items = append(resp.Items, cartItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp
}

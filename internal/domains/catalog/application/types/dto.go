// Package types defines the transfer objects exchanged with the catalog services.
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/money"
)

// CategoryDTO is the boundary-facing representation of a category.
type CategoryDTO struct {
	CategoryID    int64  `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// ProductDTO is the boundary-facing representation of a product. The owning
// category is embedded one level deep.
type ProductDTO struct {
	ProductID    int64           `json:"productId"`
	ProductTitle string          `json:"productTitle"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	SKU          string          `json:"sku"`
	PriceUnit    decimal.Decimal `json:"priceUnit" binding:"gte=0"`
	Quantity     int32           `json:"quantity" binding:"gte=0"`
	Category     *CategoryDTO    `json:"category"`
}

// MarshalJSON writes priceUnit with two fractional digits.
func (d ProductDTO) MarshalJSON() ([]byte, error) {
	type plain ProductDTO
	return json.Marshal(struct {
		plain
		PriceUnit json.Number `json:"priceUnit"`
	}{plain: plain(d), PriceUnit: money.Number(d.PriceUnit)})
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingCategory  = errors.New("product must reference a category")
	ErrNegativePrice    = errors.New("unit price must be greater or equal to zero")
	ErrNegativeQuantity = errors.New("quantity must be greater or equal to zero")
)

// Product is a sellable catalog item. It references its category by identity.
type Product struct {
	ID         int64
	Title      string
	ImageURL   string
	SKU        string
	PriceUnit  decimal.Decimal
	Quantity   int32
	CategoryID int64
}

// Validate enforces the invariants required before persisting.
func (p Product) Validate() error {
	if p.CategoryID <= 0 {
		return ErrMissingCategory
	}
	if p.PriceUnit.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Key identifies the product for set semantics: identity when assigned,
// otherwise every attribute.
func (p Product) Key() string {
	if p.ID != 0 {
		return fmt.Sprintf("id:%d", p.ID)
	}
	return fmt.Sprintf("v:%q|%q|%q|%s|%d|%d", p.Title, p.ImageURL, p.SKU, p.PriceUnit.String(), p.Quantity, p.CategoryID)
}

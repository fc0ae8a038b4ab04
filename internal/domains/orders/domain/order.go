package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMissingCart = errors.New("order must reference a cart")

// Order is a purchase placed against a cart. It references the cart by identity.
type Order struct {
	ID          int64
	OrderDate   time.Time
	Description string
	Fee         decimal.Decimal
	CartID      int64
}

// Validate enforces the invariants required before persisting.
func (o Order) Validate() error {
	if o.CartID <= 0 {
		return ErrMissingCart
	}
	return nil
}

// Key identifies the order for set semantics: identity when assigned,
// otherwise every attribute.
func (o Order) Key() string {
	if o.ID != 0 {
		return fmt.Sprintf("id:%d", o.ID)
	}
	return fmt.Sprintf("v:%d|%q|%s|%d", o.OrderDate.UnixNano(), o.Description, o.Fee.String(), o.CartID)
}

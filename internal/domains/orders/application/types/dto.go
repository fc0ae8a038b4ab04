// Package types defines the transfer objects exchanged with the orders services.
package types

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/money"
)

// CartDTO is the boundary-facing representation of a cart.
type CartDTO struct {
	CartID int64 `json:"cartId"`
	UserID int64 `json:"userId"`
}

// OrderDTO is the boundary-facing representation of an order. The owning cart
// is embedded one level deep. CartID is accepted on input as a flat reference
// when Cart is absent and always mirrors the nested cart on output.
type OrderDTO struct {
	OrderID   int64           `json:"orderId"`
	OrderDate time.Time       `json:"orderDate"`
	OrderDesc string          `json:"orderDesc"`
	OrderFee  decimal.Decimal `json:"orderFee"`
	Cart      *CartDTO        `json:"cart"`
	CartID    int64           `json:"cartId,omitempty"`
}

// MarshalJSON writes orderFee with two fractional digits.
func (d OrderDTO) MarshalJSON() ([]byte, error) {
	type plain OrderDTO
	return json.Marshal(struct {
		plain
		OrderFee json.Number `json:"orderFee"`
	}{plain: plain(d), OrderFee: money.Number(d.OrderFee)})
}

// PlaceOrderInput carries an order creation request. Requests sharing an
// idempotency key resolve to the same order.
type PlaceOrderInput struct {
	Order          OrderDTO
	IdempotencyKey string
}

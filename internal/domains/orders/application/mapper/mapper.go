// Package mapper translates between order entities and transfer objects.
package mapper

import (
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

const moneyPlaces = 2

func ToCartDTO(c domain.Cart) types.CartDTO {
	return types.CartDTO{CartID: c.ID, UserID: c.UserID}
}

func ToCartEntity(dto types.CartDTO) domain.Cart {
	return domain.Cart{ID: dto.CartID, UserID: dto.UserID}
}

// ToOrderDTO maps an order and its resolved cart. An unresolved cart becomes
// a nested DTO carrying only the referenced identity. The flat cartId mirrors
// the nested one.
func ToOrderDTO(o domain.Order, cart *domain.Cart) types.OrderDTO {
	nested := types.CartDTO{CartID: o.CartID}
	if cart != nil {
		nested = ToCartDTO(*cart)
	}
	return types.OrderDTO{
		OrderID:   o.ID,
		OrderDate: o.OrderDate,
		OrderDesc: o.Description,
		OrderFee:  o.Fee,
		Cart:      &nested,
		CartID:    nested.CartID,
	}
}

// ToOrderEntity maps an order transfer object to its entity. The nested cart
// wins over the flat cartId reference.
func ToOrderEntity(dto types.OrderDTO) domain.Order {
	o := domain.Order{
		ID:          dto.OrderID,
		OrderDate:   dto.OrderDate,
		Description: dto.OrderDesc,
		Fee:         dto.OrderFee.Round(moneyPlaces),
		CartID:      dto.CartID,
	}
	if dto.Cart != nil && dto.Cart.CartID != 0 {
		o.CartID = dto.Cart.CartID
	}
	return o
}

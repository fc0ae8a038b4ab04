package ports

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
)

// OrderPlacement creates orders, optionally through a durable workflow engine.
type OrderPlacement interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (types.OrderDTO, error)
}

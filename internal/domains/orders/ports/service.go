package ports

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
)

// OrderService exposes order use cases to driving adapters.
type OrderService interface {
	FindAll(ctx context.Context) ([]types.OrderDTO, error)
	FindByID(ctx context.Context, id int64) (types.OrderDTO, error)
	Save(ctx context.Context, dto types.OrderDTO) (types.OrderDTO, error)
	Update(ctx context.Context, dto types.OrderDTO) (types.OrderDTO, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CartService exposes cart use cases to driving adapters.
type CartService interface {
	FindAll(ctx context.Context) ([]types.CartDTO, error)
	FindByID(ctx context.Context, id int64) (types.CartDTO, error)
	Save(ctx context.Context, dto types.CartDTO) (types.CartDTO, error)
	Update(ctx context.Context, dto types.CartDTO) (types.CartDTO, error)
	DeleteByID(ctx context.Context, id int64) error
}

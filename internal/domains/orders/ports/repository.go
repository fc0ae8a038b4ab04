package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

// ErrNotFound is returned by repositories when no record matches the identity.
var ErrNotFound = errors.New("orders record not found")

// OrderRepository persists orders. Save assigns an identity when absent.
type OrderRepository interface {
	FindAll(ctx context.Context) ([]*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, order *domain.Order) error
}

// CartRepository persists carts. Save assigns an identity when absent.
type CartRepository interface {
	FindAll(ctx context.Context) ([]*domain.Cart, error)
	FindByID(ctx context.Context, id int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Delete(ctx context.Context, cart *domain.Cart) error
}

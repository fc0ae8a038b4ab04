package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

// ErrNotFound is returned by repositories when no record matches the identity.
var ErrNotFound = errors.New("catalog record not found")

// ProductRepository persists products. Save assigns an identity when absent.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) error
}

// CategoryRepository persists categories. Save assigns an identity when absent.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Save(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, category *domain.Category) error
}

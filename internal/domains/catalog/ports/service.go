package ports

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
)

// ProductService exposes product use cases to driving adapters.
type ProductService interface {
	FindAll(ctx context.Context) ([]types.ProductDTO, error)
	FindByID(ctx context.Context, id int64) (types.ProductDTO, error)
	Save(ctx context.Context, dto types.ProductDTO) (types.ProductDTO, error)
	Update(ctx context.Context, dto types.ProductDTO) (types.ProductDTO, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CategoryService exposes category use cases to driving adapters.
type CategoryService interface {
	FindAll(ctx context.Context) ([]types.CategoryDTO, error)
	FindByID(ctx context.Context, id int64) (types.CategoryDTO, error)
	Save(ctx context.Context, dto types.CategoryDTO) (types.CategoryDTO, error)
	Update(ctx context.Context, dto types.CategoryDTO) (types.CategoryDTO, error)
	DeleteByID(ctx context.Context, id int64) error
}

package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/mapper"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/dedupe"
)

// ProductService orchestrates product use cases. It holds no mutable state.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
}

// NewProductService wires the product service with its repositories. The
// category repository resolves the nested category of each product.
func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// FindAll returns every distinct product in storage order.
func (s *ProductService) FindAll(ctx context.Context) ([]types.ProductDTO, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	distinct := dedupe.Distinct(compactProducts(products), func(p *domain.Product) string { return p.Key() })
	resolve := s.categoryResolver()
	result := make([]types.ProductDTO, 0, len(distinct))
	for _, p := range distinct {
		category, err := resolve(ctx, p.CategoryID)
		if err != nil {
			return nil, err
		}
		result = append(result, mapper.ToProductDTO(*p, category))
	}
	return result, nil
}

// FindByID loads a single product.
func (s *ProductService) FindByID(ctx context.Context, id int64) (types.ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return types.ProductDTO{}, lookupError(productEntity, id, err)
	}
	return s.toDTO(ctx, product)
}

// Save creates a product. Any identity on the input is discarded.
func (s *ProductService) Save(ctx context.Context, dto types.ProductDTO) (types.ProductDTO, error) {
	product := mapper.ToProductEntity(dto)
	product.ID = 0
	if err := product.Validate(); err != nil {
		return types.ProductDTO{}, mapError(err)
	}
	saved, err := s.products.Save(ctx, &product)
	if err != nil {
		return types.ProductDTO{}, err
	}
	return s.toDTO(ctx, saved)
}

// Update replaces an existing product with the supplied state.
func (s *ProductService) Update(ctx context.Context, dto types.ProductDTO) (types.ProductDTO, error) {
	if dto.ProductID == 0 {
		return types.ProductDTO{}, mapError(ErrMissingIdentity)
	}
	if _, err := s.products.FindByID(ctx, dto.ProductID); err != nil {
		return types.ProductDTO{}, lookupError(productEntity, dto.ProductID, err)
	}
	product := mapper.ToProductEntity(dto)
	if err := product.Validate(); err != nil {
		return types.ProductDTO{}, mapError(err)
	}
	saved, err := s.products.Save(ctx, &product)
	if err != nil {
		return types.ProductDTO{}, err
	}
	return s.toDTO(ctx, saved)
}

// DeleteByID removes a product, failing with NotFound when it does not exist.
func (s *ProductService) DeleteByID(ctx context.Context, id int64) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return lookupError(productEntity, id, err)
	}
	return s.products.Delete(ctx, product)
}

func (s *ProductService) toDTO(ctx context.Context, product *domain.Product) (types.ProductDTO, error) {
	if product == nil {
		return types.ProductDTO{}, errors.New("repository returned no product")
	}
	category, err := s.categoryResolver()(ctx, product.CategoryID)
	if err != nil {
		return types.ProductDTO{}, err
	}
	return mapper.ToProductDTO(*product, category), nil
}

// categoryResolver memoises category lookups for the duration of one call.
// A dangling reference resolves to nil so the mapper keeps only the identity.
func (s *ProductService) categoryResolver() func(ctx context.Context, id int64) (*domain.Category, error) {
	seen := map[int64]*domain.Category{}
	return func(ctx context.Context, id int64) (*domain.Category, error) {
		if category, ok := seen[id]; ok {
			return category, nil
		}
		if s.categories == nil || id == 0 {
			return nil, nil
		}
		category, err := s.categories.FindByID(ctx, id)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		seen[id] = category
		return category, nil
	}
}

func compactProducts(products []*domain.Product) []*domain.Product {
	result := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if p != nil {
			result = append(result, p)
		}
	}
	return result
}

var _ ports.ProductService = (*ProductService)(nil)

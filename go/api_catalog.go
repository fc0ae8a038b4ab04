package commerceserver

import (
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

// ProductAPI serves /api/products.
type ProductAPI struct {
	resource[types.ProductDTO]
}

func NewProductAPI(service catalogports.ProductService) ProductAPI {
	return ProductAPI{resource[types.ProductDTO]{
		service: service,
		setID:   func(dto *types.ProductDTO, id int64) { dto.ProductID = id },
	}}
}

// CategoryAPI serves /api/categories.
type CategoryAPI struct {
	resource[types.CategoryDTO]
}

func NewCategoryAPI(service catalogports.CategoryService) CategoryAPI {
	return CategoryAPI{resource[types.CategoryDTO]{
		service: service,
		setID:   func(dto *types.CategoryDTO, id int64) { dto.CategoryID = id },
	}}
}

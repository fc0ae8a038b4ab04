// Package mapper translates between catalog entities and transfer objects.
// Every function is pure and total over well-formed input.
package mapper

import (
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

const moneyPlaces = 2

// ToCategoryDTO maps a category entity to its transfer object.
func ToCategoryDTO(c domain.Category) types.CategoryDTO {
	return types.CategoryDTO{
		CategoryID:    c.ID,
		CategoryTitle: c.Title,
		ImageURL:      c.ImageURL,
	}
}

// ToCategoryEntity maps a category transfer object to its entity.
func ToCategoryEntity(dto types.CategoryDTO) domain.Category {
	return domain.Category{
		ID:       dto.CategoryID,
		Title:    dto.CategoryTitle,
		ImageURL: dto.ImageURL,
	}
}

// ToProductDTO maps a product and its resolved category. When the category
// could not be resolved the nested DTO carries only the referenced identity.
func ToProductDTO(p domain.Product, category *domain.Category) types.ProductDTO {
	nested := types.CategoryDTO{CategoryID: p.CategoryID}
	if category != nil {
		nested = ToCategoryDTO(*category)
	}
	return types.ProductDTO{
		ProductID:    p.ID,
		ProductTitle: p.Title,
		ImageURL:     p.ImageURL,
		SKU:          p.SKU,
		PriceUnit:    p.PriceUnit,
		Quantity:     p.Quantity,
		Category:     &nested,
	}
}

// ToProductEntity maps a product transfer object to its entity. The nested
// category collapses to a reference by identity; its other attributes are
// resolved by persistence, never deep-inserted.
func ToProductEntity(dto types.ProductDTO) domain.Product {
	p := domain.Product{
		ID:        dto.ProductID,
		Title:     dto.ProductTitle,
		ImageURL:  dto.ImageURL,
		SKU:       dto.SKU,
		PriceUnit: dto.PriceUnit.Round(moneyPlaces),
		Quantity:  dto.Quantity,
	}
	if dto.Category != nil {
		p.CategoryID = dto.Category.CategoryID
	}
	return p
}

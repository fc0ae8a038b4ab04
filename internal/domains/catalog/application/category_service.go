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

// CategoryService orchestrates category use cases.
type CategoryService struct {
	repo ports.CategoryRepository
}

func NewCategoryService(repo ports.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) FindAll(ctx context.Context) ([]types.CategoryDTO, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	compact := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		if c != nil {
			compact = append(compact, c)
		}
	}
	distinct := dedupe.Distinct(compact, func(c *domain.Category) string { return c.Key() })
	result := make([]types.CategoryDTO, 0, len(distinct))
	for _, c := range distinct {
		result = append(result, mapper.ToCategoryDTO(*c))
	}
	return result, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id int64) (types.CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return types.CategoryDTO{}, lookupError(categoryEntity, id, err)
	}
	return mapper.ToCategoryDTO(*category), nil
}

func (s *CategoryService) Save(ctx context.Context, dto types.CategoryDTO) (types.CategoryDTO, error) {
	category := mapper.ToCategoryEntity(dto)
	category.ID = 0
	saved, err := s.repo.Save(ctx, &category)
	if err != nil {
		return types.CategoryDTO{}, err
	}
	return categoryDTO(saved)
}

func (s *CategoryService) Update(ctx context.Context, dto types.CategoryDTO) (types.CategoryDTO, error) {
	if dto.CategoryID == 0 {
		return types.CategoryDTO{}, mapError(ErrMissingIdentity)
	}
	if _, err := s.repo.FindByID(ctx, dto.CategoryID); err != nil {
		return types.CategoryDTO{}, lookupError(categoryEntity, dto.CategoryID, err)
	}
	category := mapper.ToCategoryEntity(dto)
	saved, err := s.repo.Save(ctx, &category)
	if err != nil {
		return types.CategoryDTO{}, err
	}
	return categoryDTO(saved)
}

func (s *CategoryService) DeleteByID(ctx context.Context, id int64) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(categoryEntity, id, err)
	}
	return s.repo.Delete(ctx, category)
}

func categoryDTO(category *domain.Category) (types.CategoryDTO, error) {
	if category == nil {
		return types.CategoryDTO{}, errors.New("repository returned no category")
	}
	return mapper.ToCategoryDTO(*category), nil
}

var _ ports.CategoryService = (*CategoryService)(nil)

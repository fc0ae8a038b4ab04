package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/mapper"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/dedupe"
)

// CartService orchestrates cart use cases.
type CartService struct {
	repo ports.CartRepository
}

func NewCartService(repo ports.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) FindAll(ctx context.Context) ([]types.CartDTO, error) {
	carts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	compact := make([]*domain.Cart, 0, len(carts))
	for _, c := range carts {
		if c != nil {
			compact = append(compact, c)
		}
	}
	distinct := dedupe.Distinct(compact, func(c *domain.Cart) string { return c.Key() })
	result := make([]types.CartDTO, 0, len(distinct))
	for _, c := range distinct {
		result = append(result, mapper.ToCartDTO(*c))
	}
	return result, nil
}

func (s *CartService) FindByID(ctx context.Context, id int64) (types.CartDTO, error) {
	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return types.CartDTO{}, lookupError(cartEntity, id, err)
	}
	return mapper.ToCartDTO(*cart), nil
}

func (s *CartService) Save(ctx context.Context, dto types.CartDTO) (types.CartDTO, error) {
	cart := mapper.ToCartEntity(dto)
	cart.ID = 0
	saved, err := s.repo.Save(ctx, &cart)
	if err != nil {
		return types.CartDTO{}, err
	}
	return cartDTO(saved)
}

func (s *CartService) Update(ctx context.Context, dto types.CartDTO) (types.CartDTO, error) {
	if dto.CartID == 0 {
		return types.CartDTO{}, mapError(ErrMissingIdentity)
	}
	if _, err := s.repo.FindByID(ctx, dto.CartID); err != nil {
		return types.CartDTO{}, lookupError(cartEntity, dto.CartID, err)
	}
	cart := mapper.ToCartEntity(dto)
	saved, err := s.repo.Save(ctx, &cart)
	if err != nil {
		return types.CartDTO{}, err
	}
	return cartDTO(saved)
}

func (s *CartService) DeleteByID(ctx context.Context, id int64) error {
	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(cartEntity, id, err)
	}
	return s.repo.Delete(ctx, cart)
}

func cartDTO(cart *domain.Cart) (types.CartDTO, error) {
	if cart == nil {
		return types.CartDTO{}, errors.New("repository returned no cart")
	}
	return mapper.ToCartDTO(*cart), nil
}

var _ ports.CartService = (*CartService)(nil)

package application

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/mapper"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/dedupe"
)

// OrderService orchestrates order use cases.
type OrderService struct {
	orders ports.OrderRepository
	carts  ports.CartRepository
	now    func() time.Time
}

// Option configures optional collaborators on the order service.
type Option func(*OrderService)

// WithClock overrides the clock used to stamp orders saved without a date.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewOrderService(orders ports.OrderRepository, carts ports.CartRepository, opts ...Option) *OrderService {
	s := &OrderService{orders: orders, carts: carts, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// FindAll returns every distinct order in storage order.
func (s *OrderService) FindAll(ctx context.Context) ([]types.OrderDTO, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	compact := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o != nil {
			compact = append(compact, o)
		}
	}
	distinct := dedupe.Distinct(compact, func(o *domain.Order) string { return o.Key() })
	resolve := s.cartResolver()
	result := make([]types.OrderDTO, 0, len(distinct))
	for _, o := range distinct {
		cart, err := resolve(ctx, o.CartID)
		if err != nil {
			return nil, err
		}
		result = append(result, mapper.ToOrderDTO(*o, cart))
	}
	return result, nil
}

func (s *OrderService) FindByID(ctx context.Context, id int64) (types.OrderDTO, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return types.OrderDTO{}, lookupError(orderEntity, id, err)
	}
	return s.toDTO(ctx, order)
}

// Save creates an order. Any identity on the input is discarded and a zero
// order date is stamped with the service clock.
func (s *OrderService) Save(ctx context.Context, dto types.OrderDTO) (types.OrderDTO, error) {
	order := mapper.ToOrderEntity(dto)
	order.ID = 0
	if order.OrderDate.IsZero() {
		order.OrderDate = s.now().UTC()
	}
	if err := order.Validate(); err != nil {
		return types.OrderDTO{}, mapError(err)
	}
	saved, err := s.orders.Save(ctx, &order)
	if err != nil {
		return types.OrderDTO{}, err
	}
	return s.toDTO(ctx, saved)
}

// Update replaces an existing order with the supplied state.
func (s *OrderService) Update(ctx context.Context, dto types.OrderDTO) (types.OrderDTO, error) {
	if dto.OrderID == 0 {
		return types.OrderDTO{}, mapError(ErrMissingIdentity)
	}
	if _, err := s.orders.FindByID(ctx, dto.OrderID); err != nil {
		return types.OrderDTO{}, lookupError(orderEntity, dto.OrderID, err)
	}
	order := mapper.ToOrderEntity(dto)
	if err := order.Validate(); err != nil {
		return types.OrderDTO{}, mapError(err)
	}
	saved, err := s.orders.Save(ctx, &order)
	if err != nil {
		return types.OrderDTO{}, err
	}
	return s.toDTO(ctx, saved)
}

func (s *OrderService) DeleteByID(ctx context.Context, id int64) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return lookupError(orderEntity, id, err)
	}
	return s.orders.Delete(ctx, order)
}

func (s *OrderService) toDTO(ctx context.Context, order *domain.Order) (types.OrderDTO, error) {
	if order == nil {
		return types.OrderDTO{}, errors.New("repository returned no order")
	}
	cart, err := s.cartResolver()(ctx, order.CartID)
	if err != nil {
		return types.OrderDTO{}, err
	}
	return mapper.ToOrderDTO(*order, cart), nil
}

// cartResolver memoises cart lookups for the duration of one call.
func (s *OrderService) cartResolver() func(ctx context.Context, id int64) (*domain.Cart, error) {
	seen := map[int64]*domain.Cart{}
	return func(ctx context.Context, id int64) (*domain.Cart, error) {
		if cart, ok := seen[id]; ok {
			return cart, nil
		}
		if s.carts == nil || id == 0 {
			return nil, nil
		}
		cart, err := s.carts.FindByID(ctx, id)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		seen[id] = cart
		return cart, nil
	}
}

var _ ports.OrderService = (*OrderService)(nil)

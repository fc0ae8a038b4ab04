package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

// CartService decorates the cart service with the same tracing, logging, and
// metrics as the order service.
type CartService struct {
	inner ordersports.CartService
	obs   *Service
}

// NewCartService wraps the core cart service.
func NewCartService(inner ordersports.CartService, opts ...Option) ordersports.CartService {
	return &CartService{inner: inner, obs: newService(opts)}
}

func (s *CartService) FindAll(ctx context.Context) ([]types.CartDTO, error) {
	ctx, span := s.obs.tracer.Start(ctx, "CartService.FindAll")
	defer span.End()

	result, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, s.obs.handleError(ctx, span, err, "failed to list carts")
	}
	span.SetAttributes(attribute.Int("cart.count", len(result)))
	return result, nil
}

func (s *CartService) FindByID(ctx context.Context, id int64) (types.CartDTO, error) {
	ctx, span := s.obs.tracer.Start(ctx, "CartService.FindByID", trace.WithAttributes(attribute.Int64("cart.id", id)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return types.CartDTO{}, s.obs.handleError(ctx, span, err, "failed to load cart", slog.Int64("cart.id", id))
	}
	return result, nil
}

func (s *CartService) Save(ctx context.Context, dto types.CartDTO) (types.CartDTO, error) {
	ctx, span := s.obs.tracer.Start(ctx, "CartService.Save", trace.WithAttributes(attribute.Int64("cart.user_id", dto.UserID)))
	defer span.End()

	result, err := s.inner.Save(ctx, dto)
	if err != nil {
		return types.CartDTO{}, s.obs.handleError(ctx, span, err, "failed to create cart", slog.Int64("cart.user_id", dto.UserID))
	}
	s.obs.metrics.recordCartSaved(ctx)
	s.obs.logInfo(ctx, "cart created", slog.Int64("cart.id", result.CartID))
	return result, nil
}

func (s *CartService) Update(ctx context.Context, dto types.CartDTO) (types.CartDTO, error) {
	ctx, span := s.obs.tracer.Start(ctx, "CartService.Update", trace.WithAttributes(attribute.Int64("cart.id", dto.CartID)))
	defer span.End()

	result, err := s.inner.Update(ctx, dto)
	if err != nil {
		return types.CartDTO{}, s.obs.handleError(ctx, span, err, "failed to update cart", slog.Int64("cart.id", dto.CartID))
	}
	s.obs.logInfo(ctx, "cart updated", slog.Int64("cart.id", result.CartID))
	return result, nil
}

func (s *CartService) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.obs.tracer.Start(ctx, "CartService.DeleteByID", trace.WithAttributes(attribute.Int64("cart.id", id)))
	defer span.End()

	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return s.obs.handleError(ctx, span, err, "failed to delete cart", slog.Int64("cart.id", id))
	}
	s.obs.logInfo(ctx, "cart deleted", slog.Int64("cart.id", id))
	return nil
}

var _ ordersports.CartService = (*CartService)(nil)

package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.OrderService
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.OrderService, opts ...Option) ordersports.OrderService {
	s := newService(opts)
	s.inner = inner
	return s
}

func newService(opts []Option) *Service {
	s := &Service{
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) FindAll(ctx context.Context) ([]types.OrderDTO, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindAll")
	defer span.End()

	result, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (types.OrderDTO, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return types.OrderDTO{}, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) Save(ctx context.Context, dto types.OrderDTO) (types.OrderDTO, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Save", trace.WithAttributes(attribute.Int64("order.cart_id", cartID(dto))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("order.cart_id", cartID(dto)), slog.String("order.fee", dto.OrderFee.String()))
	result, err := s.inner.Save(ctx, dto)
	if err != nil {
		return types.OrderDTO{}, s.handleError(ctx, span, err, "failed to place order", slog.Int64("order.cart_id", cartID(dto)))
	}
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed", slog.Int64("order.id", result.OrderID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, dto types.OrderDTO) (types.OrderDTO, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.Int64("order.id", dto.OrderID)))
	defer span.End()

	result, err := s.inner.Update(ctx, dto)
	if err != nil {
		return types.OrderDTO{}, s.handleError(ctx, span, err, "failed to update order", slog.Int64("order.id", dto.OrderID))
	}
	s.logInfo(ctx, "order updated", slog.Int64("order.id", result.OrderID))
	return result, nil
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func cartID(dto types.OrderDTO) int64 {
	if dto.Cart != nil && dto.Cart.CartID != 0 {
		return dto.Cart.CartID
	}
	return dto.CartID
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	feesBooked    metric.Float64Counter
	ordersDeleted metric.Int64Counter
	cartsSaved    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	feesBooked, _ := m.Float64Counter("orders.service.fees_booked", metric.WithDescription("Sum of fees on placed orders"))
	ordersDeleted, _ := m.Int64Counter("orders.service.orders_deleted", metric.WithDescription("Number of orders deleted"))
	cartsSaved, _ := m.Int64Counter("orders.service.carts_saved", metric.WithDescription("Number of carts created"))
	return serviceMetrics{ordersPlaced: ordersPlaced, feesBooked: feesBooked, ordersDeleted: ordersDeleted, cartsSaved: cartsSaved}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order types.OrderDTO) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.feesBooked != nil && order.OrderFee.IsPositive() {
		m.feesBooked.Add(ctx, order.OrderFee.InexactFloat64())
	}
}

func (m serviceMetrics) recordCartSaved(ctx context.Context) {
	if m.cartsSaved != nil {
		m.cartsSaved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ordersports.OrderService = (*Service)(nil)

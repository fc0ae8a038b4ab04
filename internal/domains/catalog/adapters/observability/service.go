package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/observability/service"

type instrumentation struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*instrumentation)

func WithLogger(logger *slog.Logger) Option {
	return func(i *instrumentation) {
		i.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(i *instrumentation) {
		i.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(i *instrumentation) {
		i.metrics = newServiceMetrics(m)
	}
}

func newInstrumentation(opts []Option) instrumentation {
	i := instrumentation{
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&i)
		}
	}
	if i.tracer == nil {
		i.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return i
}

// ProductService decorates the product service with tracing, logging, and metrics.
type ProductService struct {
	inner catalogports.ProductService
	instrumentation
}

// NewProductService wraps the core product service.
func NewProductService(inner catalogports.ProductService, opts ...Option) catalogports.ProductService {
	return &ProductService{inner: inner, instrumentation: newInstrumentation(opts)}
}

func (s *ProductService) FindAll(ctx context.Context) ([]types.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.FindAll")
	defer span.End()

	result, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	s.logInfo(ctx, "products listed", slog.Int("count", len(result)))
	return result, nil
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (types.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.FindByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return types.ProductDTO{}, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	s.logInfo(ctx, "product loaded", slog.Int64("product.id", id))
	return result, nil
}

func (s *ProductService) Save(ctx context.Context, dto types.ProductDTO) (types.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Save", trace.WithAttributes(attribute.String("product.sku", dto.SKU)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.title", dto.ProductTitle), slog.String("product.sku", dto.SKU))
	result, err := s.inner.Save(ctx, dto)
	if err != nil {
		return types.ProductDTO{}, s.handleError(ctx, span, err, "failed to create product", slog.String("product.sku", dto.SKU))
	}
	span.SetAttributes(attribute.Int64("product.id", result.ProductID))
	s.metrics.record(ctx, s.metrics.created, "product")
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.ProductID))
	return result, nil
}

func (s *ProductService) Update(ctx context.Context, dto types.ProductDTO) (types.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Update", trace.WithAttributes(attribute.Int64("product.id", dto.ProductID)))
	defer span.End()

	result, err := s.inner.Update(ctx, dto)
	if err != nil {
		return types.ProductDTO{}, s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", dto.ProductID))
	}
	s.metrics.record(ctx, s.metrics.updated, "product")
	s.logInfo(ctx, "product updated", slog.Int64("product.id", result.ProductID))
	return result, nil
}

func (s *ProductService) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.metrics.record(ctx, s.metrics.deleted, "product")
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", id))
	return nil
}

// CategoryService decorates the category service.
type CategoryService struct {
	inner catalogports.CategoryService
	instrumentation
}

func NewCategoryService(inner catalogports.CategoryService, opts ...Option) catalogports.CategoryService {
	return &CategoryService{inner: inner, instrumentation: newInstrumentation(opts)}
}

func (s *CategoryService) FindAll(ctx context.Context) ([]types.CategoryDTO, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.FindAll")
	defer span.End()

	result, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	span.SetAttributes(attribute.Int("category.count", len(result)))
	return result, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id int64) (types.CategoryDTO, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.FindByID", trace.WithAttributes(attribute.Int64("category.id", id)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return types.CategoryDTO{}, s.handleError(ctx, span, err, "failed to load category", slog.Int64("category.id", id))
	}
	return result, nil
}

func (s *CategoryService) Save(ctx context.Context, dto types.CategoryDTO) (types.CategoryDTO, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.Save")
	defer span.End()

	result, err := s.inner.Save(ctx, dto)
	if err != nil {
		return types.CategoryDTO{}, s.handleError(ctx, span, err, "failed to create category", slog.String("category.title", dto.CategoryTitle))
	}
	s.metrics.record(ctx, s.metrics.created, "category")
	s.logInfo(ctx, "category created", slog.Int64("category.id", result.CategoryID))
	return result, nil
}

func (s *CategoryService) Update(ctx context.Context, dto types.CategoryDTO) (types.CategoryDTO, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.Update", trace.WithAttributes(attribute.Int64("category.id", dto.CategoryID)))
	defer span.End()

	result, err := s.inner.Update(ctx, dto)
	if err != nil {
		return types.CategoryDTO{}, s.handleError(ctx, span, err, "failed to update category", slog.Int64("category.id", dto.CategoryID))
	}
	s.metrics.record(ctx, s.metrics.updated, "category")
	s.logInfo(ctx, "category updated", slog.Int64("category.id", result.CategoryID))
	return result, nil
}

func (s *CategoryService) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CategoryService.DeleteByID", trace.WithAttributes(attribute.Int64("category.id", id)))
	defer span.End()

	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete category", slog.Int64("category.id", id))
	}
	s.metrics.record(ctx, s.metrics.deleted, "category")
	s.logInfo(ctx, "category deleted", slog.Int64("category.id", id))
	return nil
}

func (i instrumentation) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if i.logger == nil {
		return
	}
	i.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (i instrumentation) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if i.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	i.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (i instrumentation) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	i.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.created", metric.WithDescription("Number of catalog entities created"))
	updated, _ := m.Int64Counter("catalog.service.updated", metric.WithDescription("Number of catalog entities updated"))
	deleted, _ := m.Int64Counter("catalog.service.deleted", metric.WithDescription("Number of catalog entities deleted"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted}
}

func (serviceMetrics) record(ctx context.Context, counter metric.Int64Counter, entity string) {
	if counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
	}
}

var (
	_ catalogports.ProductService  = (*ProductService)(nil)
	_ catalogports.CategoryService = (*CategoryService)(nil)
)

package api

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	catalogobs "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	ordersobs "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
)

// Services holds the decorated domain services.
type Services struct {
	Products   catalogports.ProductService
	Categories catalogports.CategoryService
	Orders     ordersports.OrderService
	Carts      ordersports.CartService
}

// NewServices builds the application services over store and wraps them with
// tracing, logging and metrics when instruments are provided.
func NewServices(store Store, instruments *platformobservability.Instruments) Services {
	var (
		logger *slog.Logger
		tracer func(string) trace.Tracer
		meter  func(string) metric.Meter
	)
	if instruments != nil {
		logger = instruments.Logger
		tracer = instruments.Tracer
		meter = instruments.Meter
	}

	catalogOpts := []catalogobs.Option{}
	ordersOpts := []ordersobs.Option{}
	if logger != nil {
		catalogOpts = append(catalogOpts, catalogobs.WithLogger(logger))
		ordersOpts = append(ordersOpts, ordersobs.WithLogger(logger))
	}
	if tracer != nil {
		catalogOpts = append(catalogOpts, catalogobs.WithTracer(tracer("internal.catalog.application")))
		ordersOpts = append(ordersOpts, ordersobs.WithTracer(tracer("internal.orders.application")))
	}
	if meter != nil {
		catalogOpts = append(catalogOpts, catalogobs.WithMeter(meter("internal.catalog.application")))
		ordersOpts = append(ordersOpts, ordersobs.WithMeter(meter("internal.orders.application")))
	}

	return Services{
		Products:   catalogobs.NewProductService(catalogapp.NewProductService(store.Products, store.Categories), catalogOpts...),
		Categories: catalogobs.NewCategoryService(catalogapp.NewCategoryService(store.Categories), catalogOpts...),
		Orders:     ordersobs.New(ordersapp.NewOrderService(store.Orders, store.Carts), ordersOpts...),
		Carts:      ordersobs.NewCartService(ordersapp.NewCartService(store.Carts), ordersOpts...),
	}
}

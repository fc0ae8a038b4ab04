package observability

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	ordersmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
)

func TestService_RecordsPlacedOrders(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	inner := application.NewOrderService(ordersmemory.NewOrderRepository(), ordersmemory.NewCartRepository())
	svc := New(inner, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	ctx := context.Background()

	for _, fee := range []string{"100.00", "200.00"} {
		_, err := svc.Save(ctx, types.OrderDTO{OrderFee: decimal.RequireFromString(fee), CartID: 1})
		require.NoError(t, err)
	}
	_, err := svc.Save(ctx, types.OrderDTO{})
	require.ErrorIs(t, err, application.ErrInvalidInput)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "OrderService.Save", spans[2].Name())
	assert.Len(t, spans[2].Events(), 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	totals := map[string]float64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += float64(dp.Value)
				}
			case metricdata.Sum[float64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, 2.0, totals["orders.service.orders_placed"])
	assert.InDelta(t, 300.0, totals["orders.service.fees_booked"], 0.001)
}

func TestCartService_TracesAndCounts(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc := NewCartService(application.NewCartService(ordersmemory.NewCartRepository()), WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	ctx := context.Background()

	saved, err := svc.Save(ctx, types.CartDTO{UserID: 42})
	require.NoError(t, err)
	_, err = svc.FindByID(ctx, saved.CartID+100)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "CartService.Save", spans[0].Name())
	assert.Equal(t, "CartService.FindByID", spans[1].Name())
	assert.Len(t, spans[1].Events(), 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	var created int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == "orders.service.carts_saved" {
				for _, dp := range data.DataPoints {
					created += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), created)
}

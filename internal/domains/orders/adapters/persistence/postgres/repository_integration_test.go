//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	orderspostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
)

func TestPostgresOrders_FeesKeepTwoPlaces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("commerce_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := platformpostgres.Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	carts := application.NewCartService(orderspostgres.NewCartRepository(db))
	orders := application.NewOrderService(orderspostgres.NewOrderRepository(db), orderspostgres.NewCartRepository(db))

	cart, err := carts.Save(ctx, types.CartDTO{UserID: 1})
	require.NoError(t, err)
	for _, fee := range []string{"100.00", "200.00"} {
		_, err := orders.Save(ctx, types.OrderDTO{OrderFee: decimal.RequireFromString(fee), Cart: &cart})
		require.NoError(t, err)
	}

	all, err := orders.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "100.00", all[0].OrderFee.StringFixed(2))
	assert.Equal(t, "200.00", all[1].OrderFee.StringFixed(2))
	assert.Equal(t, cart, *all[0].Cart)
}

package commerceserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry order creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI serves /api/orders. Creation goes through the placement
// orchestrator when one is configured.
type OrderAPI struct {
	resource[types.OrderDTO]
}

func NewOrderAPI(service ordersports.OrderService, placement ordersports.OrderPlacement) OrderAPI {
	api := OrderAPI{resource[types.OrderDTO]{
		service: service,
		setID:   func(dto *types.OrderDTO, id int64) { dto.OrderID = id },
	}}
	if placement != nil {
		api.create = func(ctx context.Context, c *gin.Context, dto types.OrderDTO) (types.OrderDTO, error) {
			return placement.PlaceOrder(ctx, types.PlaceOrderInput{
				Order:          dto,
				IdempotencyKey: strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
			})
		}
	}
	return api
}

// CartAPI serves /api/carts.
type CartAPI struct {
	resource[types.CartDTO]
}

func NewCartAPI(service ordersports.CartService) CartAPI {
	return CartAPI{resource[types.CartDTO]{
		service: service,
		setID:   func(dto *types.CartDTO, id int64) { dto.CartID = id },
	}}
}

package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

const (
	// SaveOrderActivityName persists a new order through the order service.
	SaveOrderActivityName = "orders.activities.SaveOrder"

	// InvalidInputErrorType marks failures caused by the request itself.
	InvalidInputErrorType = "InvalidInput"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.OrderService
}

func NewActivities(service ordersports.OrderService) *Activities {
	return &Activities{service: service}
}

// SaveOrder stores a new order. Invalid input is not retried.
func (a *Activities) SaveOrder(ctx context.Context, order types.OrderDTO) (types.OrderDTO, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order activity not initialized")
		return types.OrderDTO{}, errors.New("order activity not initialized")
	}
	logger.Info("SaveOrder activity started", "cartId", cartReference(order))
	saved, err := a.service.Save(ctx, order)
	if err != nil {
		logger.Error("SaveOrder activity failed", "cartId", cartReference(order), "error", err)
		if errors.Is(err, ordersapp.ErrInvalidInput) {
			return types.OrderDTO{}, temporal.NewNonRetryableApplicationError(err.Error(), InvalidInputErrorType, err)
		}
		return types.OrderDTO{}, err
	}
	logger.Info("SaveOrder activity completed", "orderId", saved.OrderID)
	return saved, nil
}

func cartReference(order types.OrderDTO) int64 {
	if order.Cart != nil && order.Cart.CartID != 0 {
		return order.Cart.CartID
	}
	return order.CartID
}

package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/activities/orders"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the order to place plus the caller's trace.
type OrderPlacementWorkflowInput struct {
	Order   types.OrderDTO
	TraceID string
}

// OrderPlacementWorkflow persists a new order with retries.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (types.OrderDTO, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.InvalidInputErrorType},
		},
	}
	var saved types.OrderDTO
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.SaveOrderActivityName, input.Order).Get(ctx, &saved)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return types.OrderDTO{}, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", saved.OrderID)...)
	return saved, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.OrderPlacement = (*TemporalOrderPlacement)(nil)
	_ ports.OrderPlacement = (*InlineOrderPlacement)(nil)
)

// TemporalOrderPlacement places orders through a Temporal workflow.
type TemporalOrderPlacement struct {
	client    client.Client
	taskQueue string
}

func NewTemporalOrderPlacement(c client.Client) *TemporalOrderPlacement {
	return &TemporalOrderPlacement{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// requestHashMemo names the memo entry carrying the order fingerprint of a
// keyed placement.
const requestHashMemo = "requestHash"

// PlaceOrder starts the placement workflow and waits for the saved order.
// A repeated idempotency key returns the result of the first run as long as
// the payload matches; a failed run may be retried under the same key.
func (o *TemporalOrderPlacement) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (types.OrderDTO, error) {
	if o == nil || o.client == nil {
		return types.OrderDTO{}, errors.New("temporal order placement not configured")
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	workflowID := buildPlacementWorkflowID(key)
	options := client.StartWorkflowOptions{
		ID:                                       workflowID,
		TaskQueue:                                o.taskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	var hash string
	if key != "" {
		var err error
		if hash, err = ordersapp.FingerprintOrder(input.Order); err != nil {
			return types.OrderDTO{}, fmt.Errorf("fingerprint order: %w", err)
		}
		options.Memo = map[string]interface{}{requestHashMemo: hash}
	}

	run, err := o.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Order: input.Order, TraceID: workflowTraceID(ctx)})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if key == "" || !errors.As(err, &alreadyStarted) {
			return types.OrderDTO{}, err
		}
		if err := o.matchExistingRun(ctx, workflowID, alreadyStarted.RunId, hash); err != nil {
			return types.OrderDTO{}, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}

	var saved types.OrderDTO
	if err := run.Get(ctx, &saved); err != nil {
		return types.OrderDTO{}, translateWorkflowError(err)
	}
	return saved, nil
}

// matchExistingRun compares the fingerprint stored on a previous run with the
// current request.
func (o *TemporalOrderPlacement) matchExistingRun(ctx context.Context, workflowID, runID, hash string) error {
	resp, err := o.client.DescribeWorkflowExecution(ctx, workflowID, runID)
	if err != nil {
		return fmt.Errorf("describe placement %s: %w", workflowID, err)
	}
	payload, ok := resp.GetWorkflowExecutionInfo().GetMemo().GetFields()[requestHashMemo]
	if !ok {
		return ports.ErrIdempotencyConflict
	}
	var stored string
	if err := converter.GetDefaultDataConverter().FromPayload(payload, &stored); err != nil {
		return fmt.Errorf("decode placement memo: %w", err)
	}
	if stored != hash {
		return ports.ErrIdempotencyConflict
	}
	return nil
}

// InlineOrderPlacement saves orders directly, for tests and when Temporal is
// disabled. With an idempotency store, a key is reserved before the order is
// written and a repeated key replays the first order.
type InlineOrderPlacement struct {
	service     ports.OrderService
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

// InlineOption configures InlineOrderPlacement.
type InlineOption func(*InlineOrderPlacement)

func WithIdempotencyStore(store ports.IdempotencyStore) InlineOption {
	return func(o *InlineOrderPlacement) {
		o.idempotency = store
	}
}

func WithPlacementLogger(logger *slog.Logger) InlineOption {
	return func(o *InlineOrderPlacement) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewInlineOrderPlacement(service ports.OrderService, opts ...InlineOption) *InlineOrderPlacement {
	o := &InlineOrderPlacement{service: service, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *InlineOrderPlacement) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (types.OrderDTO, error) {
	if o == nil || o.service == nil {
		return types.OrderDTO{}, errors.New("inline order placement not configured")
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || o.idempotency == nil {
		return o.service.Save(ctx, input.Order)
	}

	hash, err := ordersapp.FingerprintOrder(input.Order)
	if err != nil {
		return types.OrderDTO{}, fmt.Errorf("fingerprint order: %w", err)
	}
	record, err := o.idempotency.Reserve(ctx, key, hash)
	if err != nil {
		return types.OrderDTO{}, err
	}
	if !record.Pending() {
		return o.service.FindByID(ctx, record.OrderID)
	}

	saved, err := o.service.Save(ctx, input.Order)
	if err != nil {
		if releaseErr := o.idempotency.Release(ctx, key); releaseErr != nil {
			return types.OrderDTO{}, errors.Join(err, releaseErr)
		}
		return types.OrderDTO{}, err
	}
	// the order is stored; an unbound key stays pending until it expires
	if err := o.idempotency.Complete(ctx, key, saved.OrderID); err != nil {
		o.logger.WarnContext(ctx, "failed to bind idempotency key",
			slog.Int64("order.id", saved.OrderID), slog.String("error", err.Error()))
	}
	return saved, nil
}

// translateWorkflowError restores ErrInvalidInput for failures the activity
// marked as caused by the request.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == orderactivities.InvalidInputErrorType {
		return fmt.Errorf("%w: %s", ordersapp.ErrInvalidInput, appErr.Message())
	}
	return err
}

func buildPlacementWorkflowID(idempotencyKey string) string {
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		sum := sha256.Sum256([]byte(key))
		return "order-placement-idem-" + hex.EncodeToString(sum[:8])
	}
	return "order-placement-" + uuid.NewString()
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}

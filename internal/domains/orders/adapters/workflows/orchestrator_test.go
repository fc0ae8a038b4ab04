package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	commonpb "go.temporal.io/api/common/v1"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	ordersmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/activities/orders"
)

func TestInlineOrderPlacement_SavesThroughService(t *testing.T) {
	service := ordersapp.NewOrderService(ordersmemory.NewOrderRepository(), ordersmemory.NewCartRepository())
	placement := NewInlineOrderPlacement(service)

	saved, err := placement.PlaceOrder(context.Background(), types.PlaceOrderInput{Order: types.OrderDTO{OrderDesc: "inline", CartID: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.OrderID)
	assert.Equal(t, int64(2), saved.Cart.CartID)

	_, err = placement.PlaceOrder(context.Background(), types.PlaceOrderInput{})
	assert.ErrorIs(t, err, ordersapp.ErrInvalidInput)
}

func TestTemporalOrderPlacement_NotConfigured(t *testing.T) {
	var placement *TemporalOrderPlacement
	_, err := placement.PlaceOrder(context.Background(), types.PlaceOrderInput{})
	assert.Error(t, err)
}

func TestBuildPlacementWorkflowID(t *testing.T) {
	a := buildPlacementWorkflowID("checkout-123")
	b := buildPlacementWorkflowID(" checkout-123 ")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "order-placement-idem-"))

	assert.NotEqual(t, buildPlacementWorkflowID(""), buildPlacementWorkflowID(""))
}

func TestTranslateWorkflowError(t *testing.T) {
	invalid := temporal.NewNonRetryableApplicationError("order must reference a cart", orderactivities.InvalidInputErrorType, nil)
	assert.ErrorIs(t, translateWorkflowError(invalid), ordersapp.ErrInvalidInput)

	other := errors.New("deadline exceeded")
	assert.Equal(t, other, translateWorkflowError(other))
}

func TestInlineOrderPlacement_ReplaysIdempotencyKey(t *testing.T) {
	service := ordersapp.NewOrderService(ordersmemory.NewOrderRepository(), ordersmemory.NewCartRepository())
	placement := NewInlineOrderPlacement(service, WithIdempotencyStore(ordersmemory.NewIdempotencyStore()))
	ctx := context.Background()
	order := types.OrderDTO{OrderDesc: "retry me", CartID: 1}

	first, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: order, IdempotencyKey: "checkout-1"})
	require.NoError(t, err)
	second, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: order, IdempotencyKey: " checkout-1 "})
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)

	all, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	changed := order
	changed.OrderDesc = "different payload"
	_, err = placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: changed, IdempotencyKey: "checkout-1"})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	third, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: order})
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderID, third.OrderID)
}

func TestInlineOrderPlacement_InFlightKeyBlocksSecondOrder(t *testing.T) {
	service := ordersapp.NewOrderService(ordersmemory.NewOrderRepository(), ordersmemory.NewCartRepository())
	keys := ordersmemory.NewIdempotencyStore()
	placement := NewInlineOrderPlacement(service, WithIdempotencyStore(keys))
	ctx := context.Background()
	order := types.OrderDTO{OrderDesc: "concurrent", CartID: 1}

	hash, err := ordersapp.FingerprintOrder(order)
	require.NoError(t, err)
	_, err = keys.Reserve(ctx, "checkout-2", hash)
	require.NoError(t, err)

	_, err = placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: order, IdempotencyKey: "checkout-2"})
	assert.ErrorIs(t, err, ports.ErrIdempotencyInProgress)

	all, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInlineOrderPlacement_FailedSaveReleasesKey(t *testing.T) {
	service := ordersapp.NewOrderService(ordersmemory.NewOrderRepository(), ordersmemory.NewCartRepository())
	keys := ordersmemory.NewIdempotencyStore()
	placement := NewInlineOrderPlacement(service, WithIdempotencyStore(keys))
	ctx := context.Background()

	_, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: types.OrderDTO{OrderDesc: "no cart"}, IdempotencyKey: "checkout-3"})
	require.ErrorIs(t, err, ordersapp.ErrInvalidInput)
	record, err := keys.Get(ctx, "checkout-3")
	require.NoError(t, err)
	assert.Nil(t, record)

	saved, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: types.OrderDTO{OrderDesc: "fixed", CartID: 1}, IdempotencyKey: "checkout-3"})
	require.NoError(t, err)
	record, err = keys.Get(ctx, "checkout-3")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, saved.OrderID, record.OrderID)
}

func describeWithHash(t *testing.T, hash string) *workflowservice.DescribeWorkflowExecutionResponse {
	t.Helper()
	payload, err := converter.GetDefaultDataConverter().ToPayload(hash)
	require.NoError(t, err)
	return &workflowservice.DescribeWorkflowExecutionResponse{
		WorkflowExecutionInfo: &workflowpb.WorkflowExecutionInfo{
			Memo: &commonpb.Memo{Fields: map[string]*commonpb.Payload{requestHashMemo: payload}},
		},
	}
}

func completedRun(order types.OrderDTO) *mocks.WorkflowRun {
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(1).(*types.OrderDTO) = order
	}).Return(nil)
	return run
}

func TestTemporalOrderPlacement_RetryReplaysFirstRun(t *testing.T) {
	ctx := context.Background()
	order := types.OrderDTO{OrderDesc: "durable", OrderFee: decimal.RequireFromString("150.00"), CartID: 1}
	hash, err := ordersapp.FingerprintOrder(order)
	require.NoError(t, err)
	saved := order
	saved.OrderID = 11
	workflowID := buildPlacementWorkflowID("checkout-9")

	c := &mocks.Client{}
	keyed := mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.ID == workflowID &&
			o.WorkflowIDReusePolicy == enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY &&
			o.WorkflowExecutionErrorWhenAlreadyStarted &&
			o.Memo[requestHashMemo] == hash
	})
	c.On("ExecuteWorkflow", mock.Anything, keyed, mock.Anything, mock.Anything).Return(completedRun(saved), nil).Once()
	c.On("ExecuteWorkflow", mock.Anything, keyed, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-1")).Once()
	c.On("DescribeWorkflowExecution", mock.Anything, workflowID, "run-1").Return(describeWithHash(t, hash), nil)
	c.On("GetWorkflow", mock.Anything, workflowID, "run-1").Return(completedRun(saved))

	placement := NewTemporalOrderPlacement(c)
	first, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: order, IdempotencyKey: "checkout-9"})
	require.NoError(t, err)
	second, err := placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: order, IdempotencyKey: " checkout-9 "})
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	c.AssertExpectations(t)
}

func TestTemporalOrderPlacement_ReusedKeyWithDifferentPayloadConflicts(t *testing.T) {
	ctx := context.Background()
	original, err := ordersapp.FingerprintOrder(types.OrderDTO{OrderDesc: "first", CartID: 1})
	require.NoError(t, err)
	workflowID := buildPlacementWorkflowID("checkout-10")

	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-2"))
	c.On("DescribeWorkflowExecution", mock.Anything, workflowID, "run-2").Return(describeWithHash(t, original), nil)

	placement := NewTemporalOrderPlacement(c)
	_, err = placement.PlaceOrder(ctx, types.PlaceOrderInput{Order: types.OrderDTO{OrderDesc: "second", CartID: 1}, IdempotencyKey: "checkout-10"})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	c.AssertNotCalled(t, "GetWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func TestTemporalOrderPlacement_UnkeyedStartFailurePropagates(t *testing.T) {
	c := &mocks.Client{}
	unkeyed := mock.MatchedBy(func(o client.StartWorkflowOptions) bool { return o.Memo == nil })
	c.On("ExecuteWorkflow", mock.Anything, unkeyed, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-3"))

	_, err := NewTemporalOrderPlacement(c).PlaceOrder(context.Background(), types.PlaceOrderInput{Order: types.OrderDTO{CartID: 1}})
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	assert.ErrorAs(t, err, &alreadyStarted)
	c.AssertNotCalled(t, "DescribeWorkflowExecution", mock.Anything, mock.Anything, mock.Anything)
}

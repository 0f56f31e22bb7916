package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pipeline"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderStatusCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()
	o, err := order.RestoreWorkOrder(order.Record{
		ID:          kernel.NewUUID(),
		ExternalRef: "OF-1",
		Customer:    "Acme",
		Status:      order.Delivered,
	})
	require.NoError(t, err)
	cmd, _ := commands.NewAdvanceOrderStatusCommand(o.ID(), "u-1")

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, errs.KindPrecondition, errs.KindOf(err))
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderStatusCommandHandler_Handle_LogsTransition(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(t)
	cmd, _ := commands.NewAdvanceOrderStatusCommand(o.ID(), "u-1")

	orders := new(MockOrderRepository)
	ledger := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(ledger).Once(),
		ledger.On("Append", ctx, mock.MatchedBy(func(e []*history.Entry) bool {
			return len(e) == 1 && *e[0].OldValue() == "pending" && *e[0].NewValue() == "in_process" && e[0].Actor() == "u-1"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res, err := commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Transition{From: order.Pending, To: order.InProcess}, res.Transition)
	assert.Same(t, o, res.Order)
	assert.Equal(t, order.InProcess, res.Order.Status())
	assert.NotNil(t, res.Order.StartedAt())
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceStepCommandHandler_Handle_LastStepCascades(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(t)
	built, err := pipeline.Default().BuildSteps(o.ID())
	require.NoError(t, err)
	var previous *step.ProcessStep
	for _, s := range built[:5] {
		_, _ = s.Advance(previous, time.Now())
		_, _ = s.Advance(previous, time.Now())
		previous = s
	}
	last := built[5]
	_, err = last.Advance(previous, time.Now())
	require.NoError(t, err)
	cmd, _ := commands.NewAdvanceStepCommand(last.ID(), "u-1")

	steps := new(MockStepRepository)
	orders := new(MockOrderRepository)
	ledger := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("StepRepository").Return(steps)
	uow.On("OrderRepository").Return(orders)
	uow.On("HistoryRepository").Return(ledger)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		steps.On("Get", ctx, last.ID()).Return(last, nil).Once(),
		steps.On("GetAllByOrder", ctx, o.ID()).Return(built, nil).Once(),
		steps.On("Update", ctx, last).Return(nil).Once(),
		ledger.On("Append", ctx, mock.MatchedBy(func(e []*history.Entry) bool {
			return len(e) == 1 && e[0].EntityType() == history.EntityStep
		})).Return(nil).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		ledger.On("Append", ctx, mock.MatchedBy(func(e []*history.Entry) bool {
			return len(e) == 2 && e[0].EntityType() == history.EntityOrder
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res, err := commands.NewAdvanceStepCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, step.Transition{From: step.InProcess, To: step.Done}, res.Step)
	assert.Same(t, last, res.UpdatedStep)
	assert.NotNil(t, res.UpdatedStep.CompletedAt())
	require.Len(t, res.Order, 2)
	assert.Same(t, o, res.UpdatedOrder)
	assert.Equal(t, order.Completed, res.UpdatedOrder.Status())
	steps.AssertExpectations(t)
	orders.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestAdvanceStepCommandHandler_Handle_CascadeFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(t)
	built, err := pipeline.New([]pipeline.Stage{{Name: "only", Position: 1}})
	require.NoError(t, err)
	steps, err := built.BuildSteps(o.ID())
	require.NoError(t, err)
	_, err = steps[0].Advance(nil, time.Now())
	require.NoError(t, err)
	cmd, _ := commands.NewAdvanceStepCommand(steps[0].ID(), "u-1")
	dbErr := errs.NewPersistenceError("update order", assert.AnError)

	stepRepo := new(MockStepRepository)
	orders := new(MockOrderRepository)
	ledger := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("StepRepository").Return(stepRepo)
	uow.On("OrderRepository").Return(orders)
	uow.On("HistoryRepository").Return(ledger)
	uow.On("Begin", ctx).Return(nil).Once()
	stepRepo.On("Get", ctx, steps[0].ID()).Return(steps[0], nil).Once()
	stepRepo.On("GetAllByOrder", ctx, o.ID()).Return(steps, nil).Once()
	stepRepo.On("Update", ctx, steps[0]).Return(nil).Once()
	ledger.On("Append", ctx, mock.Anything).Return(nil).Once()
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orders.On("Update", ctx, o).Return(dbErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewAdvanceStepCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPersistence)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestResolveAlertCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	a, err := alert.NewSaturationAlert(kernel.NewUUID(), alert.Warning, kernel.NewUUID(), "Nave 1", kernel.NewUUID(), 17, 20, time.Now())
	require.NoError(t, err)
	cmd, err := commands.NewResolveAlertCommand(a.ID())
	require.NoError(t, err)

	repo := new(MockAlertRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AlertRepository").Return(repo).Once(),
		repo.On("Get", ctx, a.ID()).Return(a, nil).Once(),
		repo.On("Update", ctx, a).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockAlertUoWFactory)
	factory.On("Create").Return(uow).Once()

	require.NoError(t, commands.NewResolveAlertCommandHandler(factory).Handle(ctx, cmd))
	assert.True(t, a.IsResolved())
	uow.AssertExpectations(t)
}

func TestNewStepCommands_Validation(t *testing.T) {
	_, err := commands.NewAdvanceStepCommand(kernel.UUID{}, "u-1")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	blank := "  "
	_, err = commands.NewAssignOperatorCommand(kernel.NewUUID(), &blank, "u-1")
	require.ErrorIs(t, err, step.ErrOperatorIsRequired)

	_, err = commands.NewRecordStepDataCommand(kernel.NewUUID(), nil, nil, "u-1")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewResolveAlertCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

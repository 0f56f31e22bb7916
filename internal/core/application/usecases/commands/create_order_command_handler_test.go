package commands_test

import (
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/pipeline"
	"production/internal/core/domain/model/step"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("OF-1", "Acme", 1, "u-1")

	orders := new(MockOrderRepository)
	steps := new(MockStepRepository)
	ledger := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.AnythingOfType("*order.WorkOrder")).Return(nil).Once(),
		uow.On("StepRepository").Return(steps).Once(),
		steps.On("AddAll", ctx, mock.MatchedBy(func(s []*step.ProcessStep) bool {
			return len(s) == 6 && s[0].Name() == "cutting" && s[5].Name() == "packaging"
		})).Return(nil).Once(),
		uow.On("HistoryRepository").Return(ledger).Once(),
		ledger.On("Append", ctx, mock.MatchedBy(func(e []*history.Entry) bool {
			return len(e) == 1 && e[0].Action() == history.ActionCreated && *e[0].NewValue() == "pending"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, pipeline.Default())
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, id.Validate())
	orders.AssertExpectations(t)
	steps.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, pipeline.Default())

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("OF-1", "Acme", 0, "u-1")

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, pipeline.Default())
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_StepsError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("OF-1", "Acme", 0, "u-1")

	orders := new(MockOrderRepository)
	steps := new(MockStepRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("StepRepository").Return(steps).Once(),
		steps.On("AddAll", ctx, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, pipeline.Default())
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestNewCreateOrderCommand(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(" OF-9 ", " Acme ", 5, " u-1 ")
	require.NoError(t, err)
	assert.Equal(t, "OF-9", cmd.ExternalRef())
	assert.Equal(t, "Acme", cmd.Customer())
	assert.Equal(t, 5, cmd.Priority())
	assert.Equal(t, "u-1", cmd.Actor())

	_, err = commands.NewCreateOrderCommand("", "", 0, "")
	require.Error(t, err)
	require.ErrorIs(t, err, history.ErrActorIsRequired)
}

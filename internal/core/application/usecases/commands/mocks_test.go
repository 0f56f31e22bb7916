package commands_test

import (
	"context"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockLineRepository struct{ mock.Mock }

func (m *MockLineRepository) Add(ctx context.Context, l *line.Line) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLineRepository) Update(ctx context.Context, l *line.Line) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLineRepository) Get(ctx context.Context, id kernel.UUID) (*line.Line, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*line.Line), args.Error(1)
}

func (m *MockLineRepository) GetAllForAllocation(ctx context.Context) ([]*line.Line, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*line.Line), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.WorkOrder), args.Error(1)
}

func (m *MockOrderRepository) AssignLine(ctx context.Context, o *order.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) CountOccupancy(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithFinishedSteps(ctx context.Context) ([]*order.WorkOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.WorkOrder), args.Error(1)
}

type MockStepRepository struct{ mock.Mock }

func (m *MockStepRepository) AddAll(ctx context.Context, steps []*step.ProcessStep) error {
	args := m.Called(ctx, steps)
	return args.Error(0)
}

func (m *MockStepRepository) Update(ctx context.Context, s *step.ProcessStep) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStepRepository) Get(ctx context.Context, id kernel.UUID) (*step.ProcessStep, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*step.ProcessStep), args.Error(1)
}

func (m *MockStepRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*step.ProcessStep, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*step.ProcessStep), args.Error(1)
}

type MockAlertRepository struct{ mock.Mock }

func (m *MockAlertRepository) Add(ctx context.Context, a *alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alert.Alert), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entries ...*history.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) LineRepository() ports.LineRepository {
	args := m.Called()
	return args.Get(0).(ports.LineRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StepRepository() ports.StepRepository {
	args := m.Called()
	return args.Get(0).(ports.StepRepository)
}

func (m *MockUoW) AlertRepository() ports.AlertRepository {
	args := m.Called()
	return args.Get(0).(ports.AlertRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLineUoWFactory struct{ mock.Mock }

func (m *MockLineUoWFactory) Create() commands.LineUoW {
	args := m.Called()
	return args.Get(0).(commands.LineUoW)
}

type MockAlertUoWFactory struct{ mock.Mock }

func (m *MockAlertUoWFactory) Create() commands.AlertUoW {
	args := m.Called()
	return args.Get(0).(commands.AlertUoW)
}

type MockAlertNotifier struct{ mock.Mock }

func (m *MockAlertNotifier) Notify(ctx context.Context, alerts []*alert.Alert) {
	m.Called(ctx, alerts)
}

type MockAllocationRecorder struct{ mock.Mock }

func (m *MockAllocationRecorder) RecordAllocation(outcome ports.AllocationOutcome) {
	m.Called(outcome)
}

func (m *MockAllocationRecorder) RecordLineLoad(lineName string, occupancy, capacity int) {
	m.Called(lineName, occupancy, capacity)
}

func (m *MockAllocationRecorder) RecordAlert(severity alert.Severity) {
	m.Called(severity)
}

package queries_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	postgres_adapter "production/internal/adapters/out/postgres"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pipeline"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type uowFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type lineUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f lineUoWFactory) Create() commands.LineUoW {
	return f.factory.Create()
}

type alertUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f alertUoWFactory) Create() commands.AlertUoW {
	return f.factory.Create()
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, []*alert.Alert) {}

type nopRecorder struct{}

func (nopRecorder) RecordAllocation(ports.AllocationOutcome) {}

func (nopRecorder) RecordLineLoad(string, int, int) {}

func (nopRecorder) RecordAlert(alert.Severity) {}

// QueryHandlersTestSuite fills the database through the command handlers and
// checks the read models against it.
type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn, logger.Silent)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE " + strings.Join(postgres_adapter.Tables, ", ")).Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) createLine(name string, capacity int) kernel.UUID {
	cmd, err := commands.NewCreateLineCommand(name, capacity)
	suite.Require().NoError(err)
	id, err := commands.NewCreateLineCommandHandler(lineUoWFactory{factory: suite.factory}).Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return id
}

func (suite *QueryHandlersTestSuite) createOrder(ref string) kernel.UUID {
	cmd, err := commands.NewCreateOrderCommand(ref, "Acme", 0, "u-1")
	suite.Require().NoError(err)
	id, err := commands.NewCreateOrderCommandHandler(uowFactory{factory: suite.factory}, pipeline.Default()).
		Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return id
}

func (suite *QueryHandlersTestSuite) allocate(orderID kernel.UUID) commands.AllocateOrderResult {
	cmd, err := commands.NewAllocateOrderCommand(orderID, nil, "", 0, "u-1")
	suite.Require().NoError(err)
	res, err := commands.NewAllocateOrderCommandHandler(
		uowFactory{factory: suite.factory},
		services.NewDefaultSaturationMonitor(),
		nopNotifier{},
		nopRecorder{},
	).Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return res
}

func (suite *QueryHandlersTestSuite) TestLineOccupancy_EmptyDatabase_ReturnsEmptySlice() {
	result, err := queries.NewGetLineOccupancyQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetLineOccupancyQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersTestSuite) TestLineOccupancy_CountsAssignedOrders() {
	suite.createLine("Nave B", 4)
	suite.createLine("Nave A", 2)
	for i := range 3 {
		suite.allocate(suite.createOrder(fmt.Sprintf("OF-%d", i)))
	}

	result, err := queries.NewGetLineOccupancyQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetLineOccupancyQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("Nave A", result[0].Name)
	suite.Equal("Nave B", result[1].Name)
	suite.Equal("active", result[0].Status)
	suite.Equal(3, result[0].Occupancy+result[1].Occupancy)
	for _, l := range result {
		suite.InDelta(float64(l.Occupancy)/float64(l.Capacity), l.OccupancyRate, 1e-9)
	}
}

func (suite *QueryHandlersTestSuite) TestOrderHistory_CreationAndAssignmentInWriteOrder() {
	suite.createLine("Nave 1", 10)
	orderID := suite.createOrder("OF-1")
	suite.allocate(orderID)

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	suite.Require().NoError(err)
	result, err := queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("created", result[0].Action)
	suite.Nil(result[0].OldValue)
	suite.Equal("pending", *result[0].NewValue)
	suite.Equal("line_assigned", result[1].Action)
	suite.Equal("u-1", result[1].Actor)
}

func (suite *QueryHandlersTestSuite) TestOrderHistory_UnknownOrder_NotFound() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestOrderSteps_ReturnsPipelineInOrder() {
	orderID := suite.createOrder("OF-1")

	query, err := queries.NewGetOrderStepsQuery(orderID)
	suite.Require().NoError(err)
	result, err := queries.NewGetOrderStepsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 6)
	for i, s := range result {
		suite.Equal(i+1, s.Number)
		suite.Equal("pending", s.Status)
		suite.Empty(s.Data)
		suite.Empty(s.Photos)
	}
	suite.Equal("cutting", result[0].Name)
	suite.Equal("packaging", result[5].Name)
}

func (suite *QueryHandlersTestSuite) TestOrderSteps_UnknownOrder_NotFound() {
	query, err := queries.NewGetOrderStepsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderStepsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestUnresolvedAlerts_HidesResolved() {
	suite.createLine("Nave 1", 2)
	suite.allocate(suite.createOrder("OF-1"))
	res := suite.allocate(suite.createOrder("OF-2"))
	suite.Require().Len(res.Alerts, 1)

	handler := queries.NewGetUnresolvedAlertsQueryHandler(suite.db)
	result, err := handler.Handle(context.Background(), queries.NewGetUnresolvedAlertsQuery())
	suite.Require().NoError(err)
	// 1/2 raises nothing, 2/2 is critical.
	suite.Require().Len(result, 1)
	suite.Equal("critical", result[0].Severity)
	suite.InDelta(1.0, result[0].Rate, 1e-9)
	suite.Equal("Nave 1", result[0].LineName)
	suite.NotNil(result[0].RelatedOrderID)

	cmd, err := commands.NewResolveAlertCommand(result[0].ID)
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewResolveAlertCommandHandler(alertUoWFactory{factory: suite.factory}).
		Handle(context.Background(), cmd))

	result, err = handler.Handle(context.Background(), queries.NewGetUnresolvedAlertsQuery())
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueryHandlersTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.createLine("Nave 1", 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := queries.NewGetLineOccupancyQueryHandler(suite.db).Handle(ctx, queries.NewGetLineOccupancyQuery())

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}

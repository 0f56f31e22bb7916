package cmd

import (
	"log/slog"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/pipeline"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	pipeline   pipeline.Pipeline
	monitor    services.SaturationMonitor
	notifier   ports.AlertNotifier
	recorder   ports.AllocationRecorder
}

// NewCompositionRoot validates the pipeline and the saturation thresholds
// of cfg. Alerts go to notifier after each committed allocation.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	notifier ports.AlertNotifier,
	recorder ports.AllocationRecorder,
) (CompositionRoot, error) {
	p, err := cfg.BuildPipeline()
	if err != nil {
		return CompositionRoot{}, err
	}
	monitor, err := cfg.BuildSaturationMonitor()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		pipeline:   p,
		monitor:    monitor,
		notifier:   notifier,
		recorder:   recorder,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lineUoW() commands.LineUoWFactory {
	return FuncLineUoWFactory(func() commands.LineUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) alertUoW() commands.AlertUoWFactory {
	return FuncAlertUoWFactory(func() commands.AlertUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	return commands.NewAllocateOrderCommandHandler(c.uow(), c.monitor, c.notifier, c.recorder)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.pipeline)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAdvanceStepCommandHandler() commands.AdvanceStepCommandHandler {
	return commands.NewAdvanceStepCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAssignOperatorCommandHandler() commands.AssignOperatorCommandHandler {
	return commands.NewAssignOperatorCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRecordStepDataCommandHandler() commands.RecordStepDataCommandHandler {
	return commands.NewRecordStepDataCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateCreateLineCommandHandler() commands.CreateLineCommandHandler {
	return commands.NewCreateLineCommandHandler(c.lineUoW())
}

func (c *CompositionRoot) CreateChangeLineStatusCommandHandler() commands.ChangeLineStatusCommandHandler {
	return commands.NewChangeLineStatusCommandHandler(c.lineUoW())
}

func (c *CompositionRoot) CreateResolveAlertCommandHandler() commands.ResolveAlertCommandHandler {
	return commands.NewResolveAlertCommandHandler(c.alertUoW())
}

func (c *CompositionRoot) CreateGetLineOccupancyQueryHandler() queries.GetLineOccupancyQueryHandler {
	return queries.NewGetLineOccupancyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStepsQueryHandler() queries.GetOrderStepsQueryHandler {
	return queries.NewGetOrderStepsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnresolvedAlertsQueryHandler() queries.GetUnresolvedAlertsQueryHandler {
	return queries.NewGetUnresolvedAlertsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		AllocateOrder:      c.CreateAllocateOrderCommandHandler(),
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		AdvanceOrderStatus: c.CreateAdvanceOrderStatusCommandHandler(),
		AdvanceStep:        c.CreateAdvanceStepCommandHandler(),
		AssignOperator:     c.CreateAssignOperatorCommandHandler(),
		RecordStepData:     c.CreateRecordStepDataCommandHandler(),
		CreateLine:         c.CreateCreateLineCommandHandler(),
		ChangeLineStatus:   c.CreateChangeLineStatusCommandHandler(),
		ResolveAlert:       c.CreateResolveAlertCommandHandler(),
		LineOccupancy:      c.CreateGetLineOccupancyQueryHandler(),
		OrderHistory:       c.CreateGetOrderHistoryQueryHandler(),
		OrderSteps:         c.CreateGetOrderStepsQueryHandler(),
		UnresolvedAlerts:   c.CreateGetUnresolvedAlertsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager(loadRecorder jobs.LineLoadRecorder, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileOrdersCommandHandler(),
		c.CreateGetLineOccupancyQueryHandler(),
		loadRecorder,
		c.cfg.Schedules(),
		logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncLineUoWFactory func() commands.LineUoW

func (f FuncLineUoWFactory) Create() commands.LineUoW {
	return f()
}

type FuncAlertUoWFactory func() commands.AlertUoW

func (f FuncAlertUoWFactory) Create() commands.AlertUoW {
	return f()
}

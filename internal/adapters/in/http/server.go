// Package http is the inbound REST adapter. Routes are registered by hand on
// an echo instance; every handler translates the request into a command or
// query and maps failures through errs.KindOf.
package http

import (
	"context"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	LineOccupancyReader interface {
		Handle(ctx context.Context, query queries.GetLineOccupancyQuery) ([]queries.LineOccupancyResponse, error)
	}
	OrderHistoryReader interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.HistoryEntryResponse, error)
	}
	OrderStepsReader interface {
		Handle(ctx context.Context, query queries.GetOrderStepsQuery) ([]queries.StepResponse, error)
	}
	UnresolvedAlertsReader interface {
		Handle(ctx context.Context, query queries.GetUnresolvedAlertsQuery) ([]queries.AlertResponse, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Command handlers
	AllocateOrder      commands.AllocateOrderCommandHandler
	CreateOrder        commands.CreateOrderCommandHandler
	AdvanceOrderStatus commands.AdvanceOrderStatusCommandHandler
	AdvanceStep        commands.AdvanceStepCommandHandler
	AssignOperator     commands.AssignOperatorCommandHandler
	RecordStepData     commands.RecordStepDataCommandHandler
	CreateLine         commands.CreateLineCommandHandler
	ChangeLineStatus   commands.ChangeLineStatusCommandHandler
	ResolveAlert       commands.ResolveAlertCommandHandler

	// Query handlers
	LineOccupancy    LineOccupancyReader
	OrderHistory     OrderHistoryReader
	OrderSteps       OrderStepsReader
	UnresolvedAlerts UnresolvedAlertsReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// RegisterRoutes mounts the API under /api/v1 and the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/allocations", s.AllocateOrder)

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrderStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/orders/:id/steps", s.GetOrderSteps)

	api.POST("/steps/:id/advance", s.AdvanceStep)
	api.PUT("/steps/:id/operator", s.AssignOperator)
	api.POST("/steps/:id/data", s.RecordStepData)

	api.POST("/lines", s.CreateLine)
	api.PUT("/lines/:id/status", s.ChangeLineStatus)
	api.GET("/lines/occupancy", s.GetLineOccupancy)

	api.GET("/alerts", s.GetUnresolvedAlerts)
	api.POST("/alerts/:id/resolve", s.ResolveAlert)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return parseID("id", ctx.Param("id"))
}

func parseID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetUnresolvedAlerts handles GET /api/v1/alerts, newest first.
func (s *Server) GetUnresolvedAlerts(ctx echo.Context) error {
	items, err := s.h.UnresolvedAlerts.Handle(ctx.Request().Context(), queries.NewGetUnresolvedAlertsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, alerts(items))
}

// ResolveAlert handles POST /api/v1/alerts/:id/resolve.
func (s *Server) ResolveAlert(ctx echo.Context) error {
	alertID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewResolveAlertCommand(alertID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.ResolveAlert.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

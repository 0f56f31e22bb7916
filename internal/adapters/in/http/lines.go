package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateLine handles POST /api/v1/lines.
func (s *Server) CreateLine(ctx echo.Context) error {
	var req CreateLineRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateLineCommand(req.Name, req.Capacity)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.h.CreateLine.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id.String()})
}

// ChangeLineStatus handles PUT /api/v1/lines/:id/status.
func (s *Server) ChangeLineStatus(ctx echo.Context) error {
	lineID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ChangeLineStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeLineStatusCommand(lineID, req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.ChangeLineStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLineOccupancy handles GET /api/v1/lines/occupancy.
func (s *Server) GetLineOccupancy(ctx echo.Context) error {
	lines, err := s.h.LineOccupancy.Handle(ctx.Request().Context(), queries.NewGetLineOccupancyQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lineBoard(lines))
}

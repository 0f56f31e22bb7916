package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// AdvanceStep handles POST /api/v1/steps/:id/advance. Completing the last
// step also completes the order; the response lists those transitions.
func (s *Server) AdvanceStep(ctx echo.Context) error {
	stepID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceStepCommand(stepID, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	res, err := s.h.AdvanceStep.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stepAdvanceResponse(res))
}

// AssignOperator handles PUT /api/v1/steps/:id/operator.
func (s *Server) AssignOperator(ctx echo.Context) error {
	stepID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req AssignOperatorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignOperatorCommand(stepID, req.OperatorID, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.h.AssignOperator.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stepDTO(updated))
}

// RecordStepData handles POST /api/v1/steps/:id/data.
func (s *Server) RecordStepData(ctx echo.Context) error {
	stepID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req RecordStepDataRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordStepDataCommand(stepID, req.Data, req.PhotoURLs, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.RecordStepData.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// AllocateOrder handles POST /api/v1/allocations - places an unassigned order
// on the best production line.
func (s *Server) AllocateOrder(ctx echo.Context) error {
	var req AllocateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := parseID("order id", req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAllocateOrderCommand(orderID, req.Priority, req.MaterialType, req.EstimatedHours, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	res, err := s.h.AllocateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, allocationResponse(res))
}

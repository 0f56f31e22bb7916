package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - creates an order and its steps.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(req.ExternalRef, req.Customer, req.Priority, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id.String()})
}

// AdvanceOrderStatus handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	res, err := s.h.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderAdvanceResponse(res))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.h.OrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyEntries(entries))
}

// GetOrderSteps handles GET /api/v1/orders/:id/steps.
func (s *Server) GetOrderSteps(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderStepsQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	items, err := s.h.OrderSteps.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, steps(items))
}

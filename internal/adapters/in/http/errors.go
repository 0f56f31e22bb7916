package http

import (
	"errors"
	"net/http"
	"strings"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the acting user. Authentication happens upstream.
const UserIDHeader = "X-User-ID"

// Error is the body of every failed request.
type Error struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

// BottleneckError is the body returned when every active line is full.
type BottleneckError struct {
	Success    bool            `json:"success"`
	Bottleneck bool            `json:"bottleneck"`
	Error      string          `json:"error"`
	AllLines   []LineOccupancy `json:"allLines"`
}

// StatusOf maps an error kind to its HTTP status code.
func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindPrecondition, errs.KindCapacityExhausted:
		return http.StatusConflict
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	var exhausted *services.CapacityExhaustedError
	if errors.As(err, &exhausted) {
		return ctx.JSON(http.StatusConflict, BottleneckError{
			Success:    false,
			Bottleneck: true,
			Error:      err.Error(),
			AllLines:   lineOccupancies(commands.SnapshotOf(exhausted.Snapshot)),
		})
	}

	kind := errs.KindOf(err)
	status := StatusOf(kind)
	message := err.Error()
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{Success: false, Kind: string(kind), Error: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Success: false,
		Kind:    string(errs.KindValidation),
		Error:   message,
	})
}

// actorOf returns the trimmed X-User-ID header. Emptiness is left to the
// command constructors, which reject it as a validation error.
func actorOf(ctx echo.Context) string {
	return strings.TrimSpace(ctx.Request().Header.Get(UserIDHeader))
}

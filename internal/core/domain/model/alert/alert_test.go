package alert_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaturationAlert(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	lineID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	a, err := alert.NewSaturationAlert(kernel.NewUUID(), alert.Critical, lineID, "Nave 1", orderID, 9, 10, now)

	require.NoError(t, err)
	require.NoError(t, a.Validate())
	assert.Equal(t, alert.TypeLineSaturation, a.Type())
	assert.Equal(t, alert.Critical, a.Severity())
	assert.Equal(t, "line Nave 1 at 9/10 (90% occupied)", a.Message())
	assert.True(t, a.LineID().IsEqual(lineID))
	assert.True(t, a.RelatedOrderID().IsEqual(orderID))
	assert.InDelta(t, 0.9, a.Rate(), 1e-9)
	assert.Equal(t, now, a.CreatedAt())
	assert.False(t, a.IsResolved())
}

func TestNewSaturationAlert_RejectsZeroCapacity(t *testing.T) {
	_, err := alert.NewSaturationAlert(kernel.NewUUID(), alert.Warning, kernel.NewUUID(), "Nave 1", kernel.NewUUID(), 0, 0, time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewAlert_Validation(t *testing.T) {
	a, err := alert.NewAlert(kernel.UUID{}, " ", alert.Unknown, "", time.Now())

	assert.Nil(t, a)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, alert.ErrTypeIsRequired)
	require.ErrorIs(t, err, alert.ErrMessageIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAlert_RateWithoutLine(t *testing.T) {
	a, err := alert.NewAlert(kernel.NewUUID(), "manual", alert.Info, "check line wiring", time.Now())

	require.NoError(t, err)
	assert.Nil(t, a.LineID())
	assert.Zero(t, a.Rate())
}

func TestAlert_Resolve(t *testing.T) {
	a, err := alert.NewSaturationAlert(kernel.NewUUID(), alert.Warning, kernel.NewUUID(), "Nave 2", kernel.NewUUID(), 17, 20, time.Now())
	require.NoError(t, err)
	resolvedAt := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	require.NoError(t, a.Resolve(resolvedAt))
	assert.True(t, a.IsResolved())
	assert.Equal(t, resolvedAt, *a.ResolvedAt())

	err = a.Resolve(resolvedAt.Add(time.Hour))
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, errs.KindPrecondition, errs.KindOf(err))
	assert.Equal(t, resolvedAt, *a.ResolvedAt())
}

func TestParseSeverity(t *testing.T) {
	s, err := alert.ParseSeverity(" Critical ")
	require.NoError(t, err)
	assert.Equal(t, alert.Critical, s)
	assert.Equal(t, "critical", s.String())

	_, err = alert.ParseSeverity("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

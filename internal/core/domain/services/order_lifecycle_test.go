package services_test

import (
	"testing"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pipeline"
	"production/internal/core/domain/model/step"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSteps(t *testing.T, o *order.WorkOrder) []*step.ProcessStep {
	t.Helper()
	steps, err := pipeline.Default().BuildSteps(o.ID())
	require.NoError(t, err)
	return steps
}

func finish(t *testing.T, lifecycle services.OrderLifecycle, s *step.ProcessStep, steps []*step.ProcessStep) {
	t.Helper()
	_, err := lifecycle.AdvanceStep(s, steps, now)
	require.NoError(t, err)
	_, err = lifecycle.AdvanceStep(s, steps, now)
	require.NoError(t, err)
}

func TestOrderLifecycle_AdvanceStep(t *testing.T) {
	lifecycle := services.NewOrderLifecycle()
	steps := buildSteps(t, newOrder(t))

	_, err := lifecycle.AdvanceStep(steps[2], steps, now)
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)

	finish(t, lifecycle, steps[0], steps)
	finish(t, lifecycle, steps[1], steps)

	tr, err := lifecycle.AdvanceStep(steps[2], steps, now)
	require.NoError(t, err)
	assert.Equal(t, step.InProcess, tr.To)
}

func TestOrderLifecycle_OnStepCompleted(t *testing.T) {
	lifecycle := services.NewOrderLifecycle()

	t.Run("should complete the order after the last step", func(t *testing.T) {
		o := newOrder(t)
		steps := buildSteps(t, o)
		for _, s := range steps {
			finish(t, lifecycle, s, steps)
		}
		events := steps[5].PullEvents()
		require.Len(t, events, 1)

		transitions, err := lifecycle.OnStepCompleted(events[0], o, steps, now)

		require.NoError(t, err)
		assert.Equal(t, []order.Transition{
			{From: order.Pending, To: order.InProcess},
			{From: order.InProcess, To: order.Completed},
		}, transitions)
		assert.Equal(t, order.Completed, o.Status())
		assert.NotNil(t, o.CompletedAt())
	})

	t.Run("should ignore intermediate steps", func(t *testing.T) {
		o := newOrder(t)
		steps := buildSteps(t, o)
		finish(t, lifecycle, steps[0], steps)

		transitions, err := lifecycle.OnStepCompleted(steps[0].PullEvents()[0], o, steps, now)

		require.NoError(t, err)
		assert.Empty(t, transitions)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should reject an event of another order", func(t *testing.T) {
		o := newOrder(t)
		steps := buildSteps(t, newOrder(t))
		finish(t, lifecycle, steps[0], steps)

		_, err := lifecycle.OnStepCompleted(steps[0].PullEvents()[0], o, steps, now)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestOrderLifecycle_Repair(t *testing.T) {
	lifecycle := services.NewOrderLifecycle()
	o := newOrder(t)
	steps := buildSteps(t, o)

	assert.False(t, lifecycle.NeedsRepair(o, steps))
	assert.False(t, lifecycle.NeedsRepair(o, nil))

	for _, s := range steps {
		finish(t, lifecycle, s, steps)
	}
	require.True(t, lifecycle.NeedsRepair(o, steps))

	transitions, err := lifecycle.Repair(o, steps, now)
	require.NoError(t, err)
	assert.Len(t, transitions, 2)
	assert.False(t, lifecycle.NeedsRepair(o, steps))

	transitions, err = lifecycle.Repair(o, steps, now)
	require.NoError(t, err)
	assert.Empty(t, transitions)
}

package step_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func newSteps(t *testing.T, n int) []*step.ProcessStep {
	t.Helper()
	orderID := kernel.NewUUID()
	steps := make([]*step.ProcessStep, n)
	for i := range n {
		s, err := step.NewProcessStep(kernel.NewUUID(), orderID, i+1, "stage")
		require.NoError(t, err)
		steps[i] = s
	}
	return steps
}

func TestNewProcessStep(t *testing.T) {
	t.Run("should create pending step", func(t *testing.T) {
		orderID := kernel.NewUUID()

		s, err := step.NewProcessStep(kernel.NewUUID(), orderID, 1, " cutting ")

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.OrderID().IsEqual(orderID))
		assert.Equal(t, 1, s.Number())
		assert.Equal(t, "cutting", s.Name())
		assert.Equal(t, step.Pending, s.Status())
		assert.Nil(t, s.Operator())
		assert.Empty(t, s.Data())
		assert.Empty(t, s.Photos())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := step.NewProcessStep(kernel.UUID{}, kernel.UUID{}, 0, "")

		require.Error(t, err)
		require.ErrorIs(t, err, step.ErrNameIsRequired)
		assert.Contains(t, err.Error(), "0 is less than 1")
	})
}

func TestProcessStep_Validate(t *testing.T) {
	var nilStep *step.ProcessStep
	var zero step.ProcessStep

	assert.Equal(t, step.ErrStepIsNotConstructed, nilStep.Validate())
	assert.Equal(t, step.ErrStepIsNotConstructed, zero.Validate())
}

func TestProcessStep_Advance(t *testing.T) {
	t.Run("should start first step without predecessor", func(t *testing.T) {
		steps := newSteps(t, 2)

		tr, err := steps[0].Advance(nil, testNow)

		require.NoError(t, err)
		assert.Equal(t, step.Transition{From: step.Pending, To: step.InProcess}, tr)
		require.NotNil(t, steps[0].StartedAt())
		assert.Equal(t, testNow, *steps[0].StartedAt())
		assert.Empty(t, steps[0].PullEvents())
	})

	t.Run("should reject start while predecessor is pending", func(t *testing.T) {
		steps := newSteps(t, 6)

		_, err := steps[2].Advance(steps[1], testNow)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Contains(t, err.Error(), "step 2 is pending")
		assert.Equal(t, step.Pending, steps[2].Status())
	})

	t.Run("should reject start while predecessor is in process", func(t *testing.T) {
		steps := newSteps(t, 2)
		_, _ = steps[0].Advance(nil, testNow)

		_, err := steps[1].Advance(steps[0], testNow)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should start once predecessor is done", func(t *testing.T) {
		steps := newSteps(t, 3)
		_, _ = steps[0].Advance(nil, testNow)
		_, _ = steps[0].Advance(nil, testNow)
		_, _ = steps[1].Advance(steps[0], testNow)
		_, err := steps[1].Advance(steps[0], testNow)
		require.NoError(t, err)

		tr, err := steps[2].Advance(steps[1], testNow)

		require.NoError(t, err)
		assert.Equal(t, step.InProcess, tr.To)
	})

	t.Run("should reject missing or foreign predecessor", func(t *testing.T) {
		steps := newSteps(t, 2)
		other := newSteps(t, 1)[0]
		_, _ = other.Advance(nil, testNow)
		_, _ = other.Advance(nil, testNow)

		_, err := steps[1].Advance(nil, testNow)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)

		_, err = steps[1].Advance(other, testNow)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should finish and record completed event", func(t *testing.T) {
		steps := newSteps(t, 1)
		_, _ = steps[0].Advance(nil, testNow)
		finishedAt := testNow.Add(time.Hour)

		tr, err := steps[0].Advance(nil, finishedAt)

		require.NoError(t, err)
		assert.Equal(t, step.Transition{From: step.InProcess, To: step.Done}, tr)
		assert.True(t, steps[0].IsDone())
		assert.Equal(t, finishedAt, *steps[0].CompletedAt())

		events := steps[0].PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, step.Completed{StepID: steps[0].ID(), OrderID: steps[0].OrderID(), Number: 1}, events[0])
		assert.Empty(t, steps[0].PullEvents())
	})

	t.Run("should reject advancing a done step", func(t *testing.T) {
		steps := newSteps(t, 1)
		_, _ = steps[0].Advance(nil, testNow)
		_, _ = steps[0].Advance(nil, testNow)

		_, err := steps[0].Advance(nil, testNow)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestProcessStep_AssignOperator(t *testing.T) {
	t.Run("should assign in any status", func(t *testing.T) {
		steps := newSteps(t, 1)
		_, _ = steps[0].Advance(nil, testNow)
		_, _ = steps[0].Advance(nil, testNow)
		op := "operator-7"

		previous, err := steps[0].AssignOperator(&op)

		require.NoError(t, err)
		assert.Nil(t, previous)
		assert.Equal(t, "operator-7", *steps[0].Operator())
	})

	t.Run("should unassign with nil and return previous", func(t *testing.T) {
		s := newSteps(t, 1)[0]
		op := "operator-7"
		_, _ = s.AssignOperator(&op)

		previous, err := s.AssignOperator(nil)

		require.NoError(t, err)
		assert.Equal(t, "operator-7", *previous)
		assert.Nil(t, s.Operator())
	})

	t.Run("should reject blank operator", func(t *testing.T) {
		s := newSteps(t, 1)[0]
		blank := "  "

		_, err := s.AssignOperator(&blank)

		require.ErrorIs(t, err, step.ErrOperatorIsRequired)
	})
}

func TestProcessStep_RecordData(t *testing.T) {
	t.Run("should merge data and append photos", func(t *testing.T) {
		s := newSteps(t, 1)[0]

		require.NoError(t, s.RecordData(map[string]any{"torque": 12.5}, []string{"https://cdn.example.com/a.jpg"}))
		require.NoError(t, s.RecordData(map[string]any{"inspector": "ana"}, []string{"http://cdn.example.com/b.jpg"}))

		assert.Equal(t, map[string]any{"torque": 12.5, "inspector": "ana"}, s.Data())
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "http://cdn.example.com/b.jpg"}, s.Photos())
	})

	t.Run("should reject relative photo url without side effects", func(t *testing.T) {
		s := newSteps(t, 1)[0]

		err := s.RecordData(map[string]any{"k": "v"}, []string{"/tmp/a.jpg"})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, s.Data())
		assert.Empty(t, s.Photos())
	})

	t.Run("should protect internal state from callers", func(t *testing.T) {
		s := newSteps(t, 1)[0]
		_ = s.RecordData(map[string]any{"k": "v"}, nil)

		d := s.Data()
		d["k"] = "changed"

		assert.Equal(t, "v", s.Data()["k"])
	})
}

package guard_test

import (
	"errors"
	"testing"

	"production/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("line not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("work order not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInDomainObject(t *testing.T) {
	type capacity struct {
		units int
		guard guard.ConstructorGuard
	}

	errCapacityNotConstructed := errors.New("capacity must be created via newCapacity")

	newCapacity := func(units int) (capacity, error) {
		if units <= 0 {
			return capacity{}, errors.New("capacity must be positive")
		}
		return capacity{units: units, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		c, err := newCapacity(4)

		require.NoError(t, err)
		require.NoError(t, c.guard.Validate(errCapacityNotConstructed))
		assert.Equal(t, 4, c.units)
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var c capacity

		assert.Equal(t, errCapacityNotConstructed, c.guard.Validate(errCapacityNotConstructed))
	})

	t.Run("constructor_rejects_invalid_input", func(t *testing.T) {
		_, err := newCapacity(0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "capacity must be positive")
	})
}

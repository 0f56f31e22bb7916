package steprepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepData_ValueScan(t *testing.T) {
	v, err := StepData{"thickness_mm": 4.5, "ok": true}.Value()
	require.NoError(t, err)

	var got StepData
	require.NoError(t, got.Scan([]byte(v.(string))))
	assert.InDelta(t, 4.5, got["thickness_mm"], 1e-9)
	assert.Equal(t, true, got["ok"])
}

func TestStepData_NilIsEmptyObject(t *testing.T) {
	v, err := StepData(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var got StepData
	require.NoError(t, got.Scan(nil))
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestStepData_ScanRejectsUnknownSource(t *testing.T) {
	var got StepData
	require.Error(t, got.Scan(42))
}

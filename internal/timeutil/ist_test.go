package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthOfAndInMonth(t *testing.T) {
	assert.Equal(t, "2025-01", MonthOf("2025-01-15"))
	assert.True(t, InMonth("2025-01-31", "2025-01"))
	assert.False(t, InMonth("2025-02-01", "2025-01"))
}

func TestDaysInMonth(t *testing.T) {
	n, err := DaysInMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 29, n, "leap February")

	n, err = DaysInMonth("2024-09")
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	_, err = DaysInMonth("2024-13")
	assert.Error(t, err)
}

func TestLastDayOfMonth(t *testing.T) {
	d, err := LastDayOfMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d)
}

func TestMidMonthDate(t *testing.T) {
	assert.Equal(t, "2025-03-15", MidMonthDate("2025-03"))
}

func TestMonthsInclusive(t *testing.T) {
	n, err := MonthsInclusive("2024-05-20", "2024-09")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = MonthsInclusive("2024-12-01", "2025-01")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "year boundary")

	n, err = MonthsInclusive("2025-02-01", "2024-12")
	require.NoError(t, err)
	assert.Zero(t, n, "before joining floors at zero")
}

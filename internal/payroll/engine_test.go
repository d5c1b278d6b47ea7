package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-backend/internal/models"
)

func adv(date string, amount float64) *models.SalaryAdvance {
	return &models.SalaryAdvance{Date: date, Amount: amount}
}

func TestMonthAdvances(t *testing.T) {
	advances := []*models.SalaryAdvance{
		adv("2025-01-04", 100),
		adv("2025-01-20", 200),
		adv("2024-12-31", 999),
		adv("2025-02-01", 50),
	}
	assert.InDelta(t, 300, MonthAdvances(advances, "2025-01"), 1e-9)
	assert.InDelta(t, 999, MonthAdvances(advances, "2024-12"), 1e-9)
	assert.Zero(t, MonthAdvances(advances, "2025-03"))
	assert.InDelta(t, 1349, TotalAdvances(advances), 1e-9)
}

func TestMonthsWorkedInclusive(t *testing.T) {
	n, err := MonthsWorked("2024-05-20", "2024-09")
	require.NoError(t, err)
	assert.Equal(t, 5, n, "May through September, both ends count")

	n, err = MonthsWorked("2024-09-01", "2024-09")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// queried month before joining floors at zero
	n, err = MonthsWorked("2024-09-01", "2024-06")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = MonthsWorked("bad-date", "2024-09")
	assert.Error(t, err)
}

func TestMonthlyRow(t *testing.T) {
	e := &models.Employee{ID: "e1", Name: "Mohan", MonthlySalary: 3000, JoiningDate: "2024-07-01"}
	advances := []*models.SalaryAdvance{
		adv("2024-09-05", 200),
		adv("2024-08-05", 100),
	}

	row, err := MonthlyRow(e, advances, "2024-09")
	require.NoError(t, err)
	assert.InDelta(t, 200, row.Advances, 1e-9)
	assert.InDelta(t, 2800, row.Remaining, 1e-9)
	assert.Equal(t, 3, row.MonthsWorked)
	assert.InDelta(t, 9000, row.TotalSalaryAllTime, 1e-9)
	assert.InDelta(t, 300, row.TotalAdvancesAllTime, 1e-9)
	assert.InDelta(t, 8700, row.TotalRemainingAllTime, 1e-9)
}

func TestMonthlyRowFloorsAtZero(t *testing.T) {
	e := &models.Employee{MonthlySalary: 1000, JoiningDate: "2024-09-01"}
	row, err := MonthlyRow(e, []*models.SalaryAdvance{adv("2024-09-02", 1500)}, "2024-09")
	require.NoError(t, err)
	assert.Zero(t, row.Remaining)
	assert.Zero(t, row.TotalRemainingAllTime)
}

func TestProrateExplicitEndDate(t *testing.T) {
	// 3000 over September's 30 days, counted through the 10th
	p, err := Prorate(3000, "2024-09", "2024-09-10", "2025-01-01")
	require.NoError(t, err)
	assert.InDelta(t, 100, p.PerDaySalary, 1e-9)
	assert.Equal(t, 10, p.DaysCounted)
	assert.InDelta(t, 1000, p.ProratedSalary, 1e-9)
}

func TestProrateDefaultsToToday(t *testing.T) {
	// current month without an end date counts through today
	p, err := Prorate(3100, "2024-10", "", "2024-10-12")
	require.NoError(t, err)
	assert.Equal(t, 12, p.DaysCounted)

	// other months count in full
	p, err = Prorate(3100, "2024-10", "", "2024-11-03")
	require.NoError(t, err)
	assert.Equal(t, 31, p.DaysCounted)
	assert.InDelta(t, 3100, p.ProratedSalary, 1e-9)
}

func TestProrateClampsOutOfMonthEnd(t *testing.T) {
	p, err := Prorate(3000, "2024-09", "2024-10-05", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 30, p.DaysCounted)

	p, err = Prorate(3000, "2024-09", "2024-08-20", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 1, p.DaysCounted)
}

func TestAdjustmentAmount(t *testing.T) {
	assert.InDelta(t, 200, AdjustmentAmount(300, 500), 1e-9)
	assert.InDelta(t, -150, AdjustmentAmount(500, 350), 1e-9)
	assert.Zero(t, AdjustmentAmount(400, 400))
}

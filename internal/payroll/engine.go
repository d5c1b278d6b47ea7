// Package payroll computes month-scoped salary figures from raw rows.
// All functions are pure; the stores fetch rows and call in here.
package payroll

import (
	"ops-backend/internal/models"
	"ops-backend/internal/timeutil"
)

// MonthAdvances sums the advances whose date falls in the given YYYY-MM month
func MonthAdvances(advances []*models.SalaryAdvance, month string) float64 {
	var total float64
	for _, a := range advances {
		if timeutil.InMonth(a.Date, month) {
			total += a.Amount
		}
	}
	return total
}

// TotalAdvances sums every advance regardless of month
func TotalAdvances(advances []*models.SalaryAdvance) float64 {
	var total float64
	for _, a := range advances {
		total += a.Amount
	}
	return total
}

// MonthsWorked counts months inclusively from the employee's joining month
// through the queried month, floored at zero for months before joining.
func MonthsWorked(joiningDate, month string) (int, error) {
	return timeutil.MonthsInclusive(joiningDate, month)
}

// MonthlyRow builds an employee's payroll line for a month. The advances
// slice must hold all of the employee's advances; month scoping happens here.
func MonthlyRow(e *models.Employee, advances []*models.SalaryAdvance, month string) (*models.SalaryRow, error) {
	monthsWorked, err := MonthsWorked(e.JoiningDate, month)
	if err != nil {
		return nil, err
	}

	monthAdv := MonthAdvances(advances, month)
	remaining := e.MonthlySalary - monthAdv
	if remaining < 0 {
		remaining = 0
	}

	allAdv := TotalAdvances(advances)
	totalSalary := e.MonthlySalary * float64(monthsWorked)
	totalRemaining := totalSalary - allAdv
	if totalRemaining < 0 {
		totalRemaining = 0
	}

	return &models.SalaryRow{
		EmployeeID:            e.ID,
		Name:                  e.Name,
		Role:                  e.Role,
		MonthlySalary:         e.MonthlySalary,
		Advances:              monthAdv,
		Remaining:             remaining,
		MonthsWorked:          monthsWorked,
		TotalSalaryAllTime:    totalSalary,
		TotalAdvancesAllTime:  allAdv,
		TotalRemainingAllTime: totalRemaining,
	}, nil
}

// Proration is the day-prorated salary for a partial month
type Proration struct {
	PerDaySalary   float64
	DaysCounted    int
	ProratedSalary float64
}

// Prorate scales a monthly salary by days. The counted span runs inclusively
// from the 1st of the month to endDate when given, otherwise to today when
// the queried month is the current one, otherwise to the month's last day.
// The end is clamped into the month's bounds either way.
func Prorate(monthlySalary float64, month, endDate, today string) (Proration, error) {
	daysInMonth, err := timeutil.DaysInMonth(month)
	if err != nil {
		return Proration{}, err
	}

	end := endDate
	if end == "" {
		if timeutil.InMonth(today, month) {
			end = today
		} else {
			end, err = timeutil.LastDayOfMonth(month)
			if err != nil {
				return Proration{}, err
			}
		}
	}

	endT, err := timeutil.ParseDate(end)
	if err != nil {
		return Proration{}, err
	}

	days := endT.Day()
	if !timeutil.InMonth(end, month) {
		// Out-of-month end dates clamp to the nearest month boundary
		if end < month+"-01" {
			days = 1
		} else {
			days = daysInMonth
		}
	}
	if days > daysInMonth {
		days = daysInMonth
	}

	perDay := monthlySalary / float64(daysInMonth)
	return Proration{
		PerDaySalary:   perDay,
		DaysCounted:    days,
		ProratedSalary: perDay * float64(days),
	}, nil
}

// AdjustmentAmount is the single delta row needed to move a month's advance
// sum from current to target. Existing rows are never rewritten.
func AdjustmentAmount(current, target float64) float64 {
	return target - current
}

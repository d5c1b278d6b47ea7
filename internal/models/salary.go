package models

import "time"

// SalaryAdvance is one advance paid to an employee. Advances are aggregated
// per month, never merged; adjustments insert new rows so the trail survives.
type SalaryAdvance struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Amount     float64   `json:"amount"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateSalaryAdvanceRequest represents the request body for recording an advance
type CreateSalaryAdvanceRequest struct {
	Date   string  `json:"date" validate:"required,dateonly"`
	Amount float64 `json:"amount" validate:"finite,gt=0"`
	Note   string  `json:"note"`
}

// SalaryLedger is the single settlement row per employee
type SalaryLedger struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	TotalSalary float64   `json:"total_salary"`
	AmountGiven float64   `json:"amount_given"`
	Remaining   float64   `json:"remaining"` // max(0, total_salary - amount_given), derived
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertSalaryLedgerRequest replaces the single ledger row for an employee
type UpsertSalaryLedgerRequest struct {
	TotalSalary float64 `json:"total_salary" validate:"finite,gte=0"`
	AmountGiven float64 `json:"amount_given" validate:"finite,gte=0"`
}

// SalaryRow is one employee's computed payroll line for a month
type SalaryRow struct {
	EmployeeID            string  `json:"employee_id"`
	Name                  string  `json:"name"`
	Role                  string  `json:"role"`
	MonthlySalary         float64 `json:"monthly_salary"`
	Advances              float64 `json:"advances"`  // sum of this month's advances
	Remaining             float64 `json:"remaining"` // max(0, monthly_salary - advances)
	MonthsWorked          int     `json:"months_worked"`
	TotalSalaryAllTime    float64 `json:"total_salary_all_time"`
	TotalAdvancesAllTime  float64 `json:"total_advances_all_time"`
	TotalRemainingAllTime float64 `json:"total_remaining_all_time"`
}

// SalarySlip carries the day-prorated figures used by slip generation
type SalarySlip struct {
	EmployeeID     string  `json:"employee_id"`
	Name           string  `json:"name"`
	Month          string  `json:"month"` // YYYY-MM
	MonthlySalary  float64 `json:"monthly_salary"`
	PerDaySalary   float64 `json:"per_day_salary"`
	DaysCounted    int     `json:"days_counted"`
	ProratedSalary float64 `json:"prorated_salary"`
	Advances       float64 `json:"advances"`
	Remaining      float64 `json:"remaining"` // max(0, prorated_salary - advances)
}

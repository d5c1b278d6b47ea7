package models

// DashboardStats aggregates the month-scoped figures shown on the home screen
type DashboardStats struct {
	Month               string  `json:"month"` // YYYY-MM
	TotalEmployees      int     `json:"total_employees"`
	PresentToday        int     `json:"present_today"`
	AbsentToday         int     `json:"absent_today"`
	MonthAdvances       float64 `json:"month_advances"`
	TotalSuppliers      int     `json:"total_suppliers"`
	SupplierOutstanding float64 `json:"supplier_outstanding"` // sum of every supplier's ledger balance
	MonthExpenses       float64 `json:"month_expenses"`       // general + chini expenses in the month
	TrucksInMonth       int     `json:"trucks_in_month"`      // truck deliveries recorded in the month
	BillCount           int     `json:"bill_count"`
	BillTotal           float64 `json:"bill_total"`
}

package postgres

import (
	"context"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

func (s *Store) Dashboard(ctx context.Context, month, today string) (*models.DashboardStats, error) {
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}
	if err := store.CheckDate("today", today); err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{Month: month}

	// Outstanding is linear in the rows, so the per-supplier running balance
	// collapses to opening balances plus truck amounts minus payments.
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM employees),
			(SELECT COUNT(*) FROM attendance WHERE date = $2 AND status = 'present'),
			(SELECT COUNT(*) FROM attendance WHERE date = $2 AND status <> 'present'),
			(SELECT COALESCE(SUM(amount), 0) FROM salary_advances WHERE to_char(date, 'YYYY-MM') = $1),
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COALESCE(SUM(opening_balance), 0) FROM suppliers)
				+ (SELECT COALESCE(SUM(CASE WHEN type = 'truck' THEN amount ELSE -amount END), 0) FROM supplier_transactions),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE to_char(date, 'YYYY-MM') = $1)
				+ (SELECT COALESCE(SUM(amount), 0) FROM chini_expenses WHERE to_char(date, 'YYYY-MM') = $1),
			(SELECT COUNT(*) FROM supplier_transactions WHERE type = 'truck' AND to_char(date, 'YYYY-MM') = $1),
			(SELECT COUNT(*) FROM bills),
			(SELECT COALESCE(SUM(grand_total), 0) FROM bills)
	`, month, today).Scan(
		&stats.TotalEmployees, &stats.PresentToday, &stats.AbsentToday,
		&stats.MonthAdvances, &stats.TotalSuppliers, &stats.SupplierOutstanding,
		&stats.MonthExpenses, &stats.TrucksInMonth, &stats.BillCount, &stats.BillTotal)
	if err != nil {
		return nil, store.Storagef("Dashboard", err)
	}
	return stats, nil
}

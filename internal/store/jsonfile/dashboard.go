package jsonfile

import (
	"context"

	"ops-backend/internal/ledger"
	"ops-backend/internal/models"
	"ops-backend/internal/store"
	"ops-backend/internal/timeutil"
)

func (s *Store) Dashboard(ctx context.Context, month, today string) (*models.DashboardStats, error) {
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}
	if err := store.CheckDate("today", today); err != nil {
		return nil, err
	}

	var stats *models.DashboardStats
	err := s.read("Dashboard", func(doc *document) error {
		stats = &models.DashboardStats{Month: month}
		stats.TotalEmployees = len(doc.Employees)
		stats.TotalSuppliers = len(doc.Suppliers)

		for _, rec := range doc.Attendance {
			if rec.Date != today {
				continue
			}
			if rec.Status == models.AttendancePresent {
				stats.PresentToday++
			} else {
				stats.AbsentToday++
			}
		}

		for _, adv := range doc.SalaryAdvances {
			if timeutil.InMonth(adv.Date, month) {
				stats.MonthAdvances += adv.Amount
			}
		}

		for _, sup := range doc.Suppliers {
			txs := supplierTransactions(doc, sup.ID)
			stats.SupplierOutstanding += ledger.Summarize(sup, txs).Balance
		}
		for _, tx := range doc.SupplierTransactions {
			if tx.Type == models.SupplierTxTruck && timeutil.InMonth(tx.Date, month) {
				stats.TrucksInMonth++
			}
		}

		for _, e := range doc.Expenses {
			if timeutil.InMonth(e.Date, month) {
				stats.MonthExpenses += e.Amount
			}
		}
		for _, e := range doc.ChiniExpenses {
			if timeutil.InMonth(e.Date, month) {
				stats.MonthExpenses += e.Amount
			}
		}

		stats.BillCount = len(doc.Bills)
		for _, b := range doc.Bills {
			stats.BillTotal += b.GrandTotal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

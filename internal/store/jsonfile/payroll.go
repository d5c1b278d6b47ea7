package jsonfile

import (
	"context"
	"sort"

	"ops-backend/internal/models"
	"ops-backend/internal/payroll"
	"ops-backend/internal/store"
	"ops-backend/internal/timeutil"
)

func (s *Store) CreateSalaryAdvance(ctx context.Context, employeeID string, req *models.CreateSalaryAdvanceRequest) (*models.SalaryAdvance, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	adv := &models.SalaryAdvance{
		ID:         s.deps.NewID(),
		EmployeeID: employeeID,
		Date:       req.Date,
		Amount:     req.Amount,
		Note:       req.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.write("CreateSalaryAdvance", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		doc.SalaryAdvances = append(doc.SalaryAdvances, adv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adv, nil
}

func (s *Store) ListSalaryAdvances(ctx context.Context, employeeID string) ([]*models.SalaryAdvance, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}

	var out []*models.SalaryAdvance
	err := s.read("ListSalaryAdvances", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		out = employeeAdvances(doc, employeeID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteSalaryAdvance(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	return s.write("DeleteSalaryAdvance", func(doc *document) error {
		kept := doc.SalaryAdvances[:0]
		found := false
		for _, a := range doc.SalaryAdvances {
			if a.ID == id {
				found = true
				continue
			}
			kept = append(kept, a)
		}
		if !found {
			return store.NotFound("salary advance", id)
		}
		doc.SalaryAdvances = kept
		return nil
	})
}

func (s *Store) SetMonthlyAdvanceTotal(ctx context.Context, employeeID, month string, target float64) (*models.SalaryAdvance, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}
	if err := store.CheckAmount("target", target); err != nil {
		return nil, err
	}

	var out *models.SalaryAdvance
	err := s.write("SetMonthlyAdvanceTotal", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		current := payroll.MonthAdvances(employeeAdvances(doc, employeeID), month)
		delta := payroll.AdjustmentAmount(current, target)
		if delta == 0 {
			return store.Validationf("target", "month total is already %.2f", target)
		}
		now := s.now()
		adv := &models.SalaryAdvance{
			ID:         s.deps.NewID(),
			EmployeeID: employeeID,
			Date:       timeutil.MidMonthDate(month),
			Amount:     delta,
			Note:       "advance total adjustment",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		doc.SalaryAdvances = append(doc.SalaryAdvances, adv)
		c := *adv
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpsertSalaryLedger(ctx context.Context, employeeID string, req *models.UpsertSalaryLedgerRequest) (*models.SalaryLedger, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.SalaryLedger
	err := s.write("UpsertSalaryLedger", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		now := s.now()
		for _, led := range doc.SalaryLedgers {
			if led.EmployeeID == employeeID {
				led.TotalSalary = req.TotalSalary
				led.AmountGiven = req.AmountGiven
				led.Remaining = salaryRemaining(req.TotalSalary, req.AmountGiven)
				led.UpdatedAt = now
				c := *led
				out = &c
				return nil
			}
		}
		led := &models.SalaryLedger{
			ID:          s.deps.NewID(),
			EmployeeID:  employeeID,
			TotalSalary: req.TotalSalary,
			AmountGiven: req.AmountGiven,
			Remaining:   salaryRemaining(req.TotalSalary, req.AmountGiven),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		doc.SalaryLedgers = append(doc.SalaryLedgers, led)
		c := *led
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetSalaryLedger(ctx context.Context, employeeID string) (*models.SalaryLedger, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}

	var out *models.SalaryLedger
	err := s.read("GetSalaryLedger", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		for _, led := range doc.SalaryLedgers {
			if led.EmployeeID == employeeID {
				c := *led
				out = &c
				return nil
			}
		}
		return store.NotFound("salary ledger", employeeID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SalaryRows(ctx context.Context, month string) ([]*models.SalaryRow, error) {
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}

	var out []*models.SalaryRow
	err := s.read("SalaryRows", func(doc *document) error {
		emps := make([]*models.Employee, len(doc.Employees))
		copy(emps, doc.Employees)
		sort.SliceStable(emps, func(i, j int) bool {
			if emps[i].Name != emps[j].Name {
				return emps[i].Name < emps[j].Name
			}
			return emps[i].ID < emps[j].ID
		})

		out = []*models.SalaryRow{}
		for _, e := range emps {
			row, err := payroll.MonthlyRow(e, employeeAdvances(doc, e.ID), month)
			if err != nil {
				return err
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SalarySlip(ctx context.Context, employeeID, month, endDate string) (*models.SalarySlip, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}
	if endDate != "" {
		if err := store.CheckDate("end_date", endDate); err != nil {
			return nil, err
		}
	}

	var out *models.SalarySlip
	err := s.read("SalarySlip", func(doc *document) error {
		emp := findEmployee(doc, employeeID)
		if emp == nil {
			return store.NotFound("employee", employeeID)
		}
		today := s.now().In(timeutil.IST).Format(timeutil.DateLayout)
		pro, err := payroll.Prorate(emp.MonthlySalary, month, endDate, today)
		if err != nil {
			return err
		}
		advances := payroll.MonthAdvances(employeeAdvances(doc, employeeID), month)
		remaining := pro.ProratedSalary - advances
		if remaining < 0 {
			remaining = 0
		}
		out = &models.SalarySlip{
			EmployeeID:     emp.ID,
			Name:           emp.Name,
			Month:          month,
			MonthlySalary:  emp.MonthlySalary,
			PerDaySalary:   pro.PerDaySalary,
			DaysCounted:    pro.DaysCounted,
			ProratedSalary: pro.ProratedSalary,
			Advances:       advances,
			Remaining:      remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// employeeAdvances copies an employee's advances ordered by (date, created_at, id)
func employeeAdvances(doc *document, employeeID string) []*models.SalaryAdvance {
	var out []*models.SalaryAdvance
	for _, a := range doc.SalaryAdvances {
		if a.EmployeeID == employeeID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func salaryRemaining(total, given float64) float64 {
	if r := total - given; r > 0 {
		return r
	}
	return 0
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ops-backend/internal/models"
	"ops-backend/internal/payroll"
	"ops-backend/internal/store"
	"ops-backend/internal/timeutil"
)

const advanceColumns = `id, employee_id, to_char(date, 'YYYY-MM-DD'), amount, note, created_at, updated_at`

func scanAdvance(row pgx.Row) (*models.SalaryAdvance, error) {
	a := &models.SalaryAdvance{}
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Amount, &a.Note, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) CreateSalaryAdvance(ctx context.Context, employeeID string, req *models.CreateSalaryAdvanceRequest) (*models.SalaryAdvance, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}
	if err := s.employeeExists(ctx, s.pool, employeeID); err != nil {
		return nil, store.Storagef("CreateSalaryAdvance", err)
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO salary_advances (id, employee_id, date, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, adv.ID, adv.EmployeeID, adv.Date, adv.Amount, adv.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateSalaryAdvance", err)
	}
	return adv, nil
}

func (s *Store) ListSalaryAdvances(ctx context.Context, employeeID string) ([]*models.SalaryAdvance, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := s.employeeExists(ctx, s.pool, employeeID); err != nil {
		return nil, store.Storagef("ListSalaryAdvances", err)
	}
	return s.advancesFor(ctx, employeeID)
}

// advancesFor returns an employee's advances ordered by (date, created_at, id)
func (s *Store) advancesFor(ctx context.Context, employeeID string) ([]*models.SalaryAdvance, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+advanceColumns+`
		FROM salary_advances
		WHERE employee_id = $1
		ORDER BY date, created_at, id
	`, employeeID)
	if err != nil {
		return nil, store.Storagef("ListSalaryAdvances", err)
	}
	defer rows.Close()

	out := []*models.SalaryAdvance{}
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, store.Storagef("ListSalaryAdvances", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListSalaryAdvances", err)
	}
	return out, nil
}

func (s *Store) DeleteSalaryAdvance(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM salary_advances WHERE id = $1`, id)
	if err != nil {
		return store.Storagef("DeleteSalaryAdvance", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("salary advance", id)
	}
	return nil
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

	var adv *models.SalaryAdvance
	err := pgx.BeginFunc(ctx, s.pool, func(dbtx pgx.Tx) error {
		if err := s.employeeExists(ctx, dbtx, employeeID); err != nil {
			return err
		}

		var current float64
		err := dbtx.QueryRow(ctx, `
			SELECT COALESCE(SUM(amount), 0)
			FROM salary_advances
			WHERE employee_id = $1 AND to_char(date, 'YYYY-MM') = $2
		`, employeeID, month).Scan(&current)
		if err != nil {
			return err
		}

		delta := payroll.AdjustmentAmount(current, target)
		if delta == 0 {
			return store.Validationf("target", "month total is already %.2f", target)
		}

		now := s.now()
		adv = &models.SalaryAdvance{
			ID:         s.deps.NewID(),
			EmployeeID: employeeID,
			Date:       timeutil.MidMonthDate(month),
			Amount:     delta,
			Note:       "advance total adjustment",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		_, err = dbtx.Exec(ctx, `
			INSERT INTO salary_advances (id, employee_id, date, amount, note, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
		`, adv.ID, adv.EmployeeID, adv.Date, adv.Amount, adv.Note, now)
		return err
	})
	if err != nil {
		return nil, store.Storagef("SetMonthlyAdvanceTotal", err)
	}
	return adv, nil
}

func scanSalaryLedger(row pgx.Row) (*models.SalaryLedger, error) {
	led := &models.SalaryLedger{}
	err := row.Scan(&led.ID, &led.EmployeeID, &led.TotalSalary, &led.AmountGiven, &led.CreatedAt, &led.UpdatedAt)
	if err != nil {
		return nil, err
	}
	led.Remaining = salaryRemaining(led.TotalSalary, led.AmountGiven)
	return led, nil
}

func (s *Store) UpsertSalaryLedger(ctx context.Context, employeeID string, req *models.UpsertSalaryLedgerRequest) (*models.SalaryLedger, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}
	if err := s.employeeExists(ctx, s.pool, employeeID); err != nil {
		return nil, store.Storagef("UpsertSalaryLedger", err)
	}

	now := s.now()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO salary_ledgers (id, employee_id, total_salary, amount_given, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (employee_id) DO UPDATE SET
			total_salary = EXCLUDED.total_salary,
			amount_given = EXCLUDED.amount_given,
			updated_at = EXCLUDED.updated_at
		RETURNING id, employee_id, total_salary, amount_given, created_at, updated_at
	`, s.deps.NewID(), employeeID, req.TotalSalary, req.AmountGiven, now)
	led, err := scanSalaryLedger(row)
	if err != nil {
		return nil, store.Storagef("UpsertSalaryLedger", err)
	}
	return led, nil
}

func (s *Store) GetSalaryLedger(ctx context.Context, employeeID string) (*models.SalaryLedger, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := s.employeeExists(ctx, s.pool, employeeID); err != nil {
		return nil, store.Storagef("GetSalaryLedger", err)
	}

	led, err := scanSalaryLedger(s.pool.QueryRow(ctx, `
		SELECT id, employee_id, total_salary, amount_given, created_at, updated_at
		FROM salary_ledgers WHERE employee_id = $1
	`, employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("salary ledger", employeeID)
	}
	if err != nil {
		return nil, store.Storagef("GetSalaryLedger", err)
	}
	return led, nil
}

func (s *Store) SalaryRows(ctx context.Context, month string) ([]*models.SalaryRow, error) {
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}

	emps, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	// one pass over every advance, grouped in memory; the payroll engine does
	// the month scoping so both backends share the arithmetic
	rows, err := s.pool.Query(ctx, `SELECT `+advanceColumns+` FROM salary_advances ORDER BY date, created_at, id`)
	if err != nil {
		return nil, store.Storagef("SalaryRows", err)
	}
	defer rows.Close()

	byEmployee := map[string][]*models.SalaryAdvance{}
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, store.Storagef("SalaryRows", err)
		}
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("SalaryRows", err)
	}

	out := []*models.SalaryRow{}
	for _, e := range emps {
		row, err := payroll.MonthlyRow(e, byEmployee[e.ID], month)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
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

	emp, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	advances, err := s.advancesFor(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := s.deps.Clock().In(timeutil.IST).Format(timeutil.DateLayout)
	pro, err := payroll.Prorate(emp.MonthlySalary, month, endDate, today)
	if err != nil {
		return nil, err
	}
	monthAdv := payroll.MonthAdvances(advances, month)
	remaining := pro.ProratedSalary - monthAdv
	if remaining < 0 {
		remaining = 0
	}
	return &models.SalarySlip{
		EmployeeID:     emp.ID,
		Name:           emp.Name,
		Month:          month,
		MonthlySalary:  emp.MonthlySalary,
		PerDaySalary:   pro.PerDaySalary,
		DaysCounted:    pro.DaysCounted,
		ProratedSalary: pro.ProratedSalary,
		Advances:       monthAdv,
		Remaining:      remaining,
	}, nil
}

func salaryRemaining(total, given float64) float64 {
	if r := total - given; r > 0 {
		return r
	}
	return 0
}

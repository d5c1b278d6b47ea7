package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

const employeeColumns = `id, name, role, monthly_salary, to_char(joining_date, 'YYYY-MM-DD'),
	active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	emp := &models.Employee{}
	err := row.Scan(&emp.ID, &emp.Name, &emp.Role, &emp.MonthlySalary,
		&emp.JoiningDate, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	emp := &models.Employee{
		ID:            s.deps.NewID(),
		Name:          req.Name,
		Role:          req.Role,
		MonthlySalary: req.MonthlySalary,
		JoiningDate:   req.JoiningDate,
		Active:        req.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO employees (id, name, role, monthly_salary, joining_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, emp.ID, emp.Name, emp.Role, emp.MonthlySalary, emp.JoiningDate, emp.Active, now)
	if err != nil {
		return nil, store.Storagef("CreateEmployee", err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, store.Storagef("ListEmployees", err)
	}
	defer rows.Close()

	out := []*models.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, store.Storagef("ListEmployees", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListEmployees", err)
	}
	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}

	emp, err := scanEmployee(s.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("employee", id)
	}
	if err != nil {
		return nil, store.Storagef("GetEmployee", err)
	}
	return emp, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE employees SET name = $2, role = $3, monthly_salary = $4,
			joining_date = $5, active = $6, updated_at = $7
		WHERE id = $1
		RETURNING `+employeeColumns,
		id, req.Name, req.Role, req.MonthlySalary, req.JoiningDate, req.Active, s.now())
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("employee", id)
	}
	if err != nil {
		return nil, store.Storagef("UpdateEmployee", err)
	}
	return emp, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	// attendance, advances and the salary ledger cascade with the employee
	tag, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return store.Storagef("DeleteEmployee", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("employee", id)
	}
	return nil
}

func (s *Store) employeeExists(ctx context.Context, q queryer, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return store.NotFound("employee", id)
	}
	return nil
}

const attendanceColumns = `id, employee_id, to_char(date, 'YYYY-MM-DD'), status, created_at, updated_at`

func scanAttendance(row pgx.Row) (*models.AttendanceRecord, error) {
	a := &models.AttendanceRecord{}
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpsertAttendance records one status per employee per day; marking the same
// day again overwrites the earlier status.
func (s *Store) UpsertAttendance(ctx context.Context, employeeID string, req *models.UpsertAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}
	if err := s.employeeExists(ctx, s.pool, employeeID); err != nil {
		return nil, store.Storagef("UpsertAttendance", err)
	}

	now := s.now()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO attendance (id, employee_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (employee_id, date)
			DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		RETURNING `+attendanceColumns,
		s.deps.NewID(), employeeID, req.Date, req.Status, now)
	a, err := scanAttendance(row)
	if err != nil {
		return nil, store.Storagef("UpsertAttendance", err)
	}
	return a, nil
}

func (s *Store) ListAttendance(ctx context.Context, employeeID, month string) ([]*models.AttendanceRecord, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}
	if err := s.employeeExists(ctx, s.pool, employeeID); err != nil {
		return nil, store.Storagef("ListAttendance", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE employee_id = $1 AND to_char(date, 'YYYY-MM') = $2
		ORDER BY date, id
	`, employeeID, month)
	if err != nil {
		return nil, store.Storagef("ListAttendance", err)
	}
	defer rows.Close()

	out := []*models.AttendanceRecord{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, store.Storagef("ListAttendance", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListAttendance", err)
	}
	return out, nil
}

func (s *Store) AttendanceForDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	if err := store.CheckDate("date", date); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE date = $1
		ORDER BY employee_id, id
	`, date)
	if err != nil {
		return nil, store.Storagef("AttendanceForDate", err)
	}
	defer rows.Close()

	out := []*models.AttendanceRecord{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, store.Storagef("AttendanceForDate", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("AttendanceForDate", err)
	}
	return out, nil
}

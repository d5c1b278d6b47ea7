package jsonfile

import (
	"context"
	"sort"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
	"ops-backend/internal/timeutil"
)

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

	err := s.write("CreateEmployee", func(doc *document) error {
		doc.Employees = append(doc.Employees, emp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	var out []*models.Employee
	err := s.read("ListEmployees", func(doc *document) error {
		out = make([]*models.Employee, 0, len(doc.Employees))
		for _, e := range doc.Employees {
			c := *e
			out = append(out, &c)
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}

	var out *models.Employee
	err := s.read("GetEmployee", func(doc *document) error {
		emp := findEmployee(doc, id)
		if emp == nil {
			return store.NotFound("employee", id)
		}
		c := *emp
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.Employee
	err := s.write("UpdateEmployee", func(doc *document) error {
		emp := findEmployee(doc, id)
		if emp == nil {
			return store.NotFound("employee", id)
		}
		emp.Name = req.Name
		emp.Role = req.Role
		emp.MonthlySalary = req.MonthlySalary
		emp.JoiningDate = req.JoiningDate
		emp.Active = req.Active
		emp.UpdatedAt = s.now()
		c := *emp
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	return s.write("DeleteEmployee", func(doc *document) error {
		if findEmployee(doc, id) == nil {
			return store.NotFound("employee", id)
		}
		kept := doc.Employees[:0]
		for _, e := range doc.Employees {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		doc.Employees = kept

		// cascade: attendance, advances and the salary ledger row go too
		keptAtt := doc.Attendance[:0]
		for _, a := range doc.Attendance {
			if a.EmployeeID != id {
				keptAtt = append(keptAtt, a)
			}
		}
		doc.Attendance = keptAtt

		keptAdv := doc.SalaryAdvances[:0]
		for _, a := range doc.SalaryAdvances {
			if a.EmployeeID != id {
				keptAdv = append(keptAdv, a)
			}
		}
		doc.SalaryAdvances = keptAdv

		keptLed := doc.SalaryLedgers[:0]
		for _, l := range doc.SalaryLedgers {
			if l.EmployeeID != id {
				keptLed = append(keptLed, l)
			}
		}
		doc.SalaryLedgers = keptLed
		return nil
	})
}

func (s *Store) UpsertAttendance(ctx context.Context, employeeID string, req *models.UpsertAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.AttendanceRecord
	err := s.write("UpsertAttendance", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		for _, rec := range doc.Attendance {
			if rec.EmployeeID == employeeID && rec.Date == req.Date {
				rec.Status = req.Status
				rec.UpdatedAt = s.now()
				c := *rec
				out = &c
				return nil
			}
		}
		now := s.now()
		rec := &models.AttendanceRecord{
			ID:         s.deps.NewID(),
			EmployeeID: employeeID,
			Date:       req.Date,
			Status:     req.Status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		doc.Attendance = append(doc.Attendance, rec)
		c := *rec
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListAttendance(ctx context.Context, employeeID, month string) ([]*models.AttendanceRecord, error) {
	if err := store.CheckID("employee_id", employeeID); err != nil {
		return nil, err
	}
	if err := store.CheckMonth(month); err != nil {
		return nil, err
	}

	var out []*models.AttendanceRecord
	err := s.read("ListAttendance", func(doc *document) error {
		if findEmployee(doc, employeeID) == nil {
			return store.NotFound("employee", employeeID)
		}
		out = []*models.AttendanceRecord{}
		for _, rec := range doc.Attendance {
			if rec.EmployeeID == employeeID && timeutil.InMonth(rec.Date, month) {
				c := *rec
				out = append(out, &c)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) AttendanceForDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	if err := store.CheckDate("date", date); err != nil {
		return nil, err
	}

	var out []*models.AttendanceRecord
	err := s.read("AttendanceForDate", func(doc *document) error {
		out = []*models.AttendanceRecord{}
		for _, rec := range doc.Attendance {
			if rec.Date == date {
				c := *rec
				out = append(out, &c)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findEmployee(doc *document, id string) *models.Employee {
	for _, e := range doc.Employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

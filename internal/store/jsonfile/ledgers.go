package jsonfile

import (
	"context"
	"sort"
	"time"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

// The flat ledgers (trucks, expenses, investments, chini expenses, land
// records, vehicles) share one lifecycle; each gets its own collection and
// explicit operations so the contract stays fully typed.

func (s *Store) CreateTruck(ctx context.Context, req *models.CreateTruckRequest) (*models.Truck, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	t := &models.Truck{
		ID:          s.deps.NewID(),
		TruckNumber: req.TruckNumber,
		Model:       req.Model,
		OwnerName:   req.OwnerName,
		Party:       req.Party,
		Date:        req.Date,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.write("CreateTruck", func(doc *document) error {
		doc.Trucks = append(doc.Trucks, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListTrucks(ctx context.Context) ([]*models.Truck, error) {
	var out []*models.Truck
	err := s.read("ListTrucks", func(doc *document) error {
		out = make([]*models.Truck, 0, len(doc.Trucks))
		for _, t := range doc.Trucks {
			c := *t
			out = append(out, &c)
		}
		sortByDateDesc(out, func(t *models.Truck) (string, time.Time, string) { return t.Date, t.CreatedAt, t.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateTruck(ctx context.Context, id string, req *models.UpdateTruckRequest) (*models.Truck, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.Truck
	err := s.write("UpdateTruck", func(doc *document) error {
		for _, t := range doc.Trucks {
			if t.ID == id {
				t.TruckNumber = req.TruckNumber
				t.Model = req.Model
				t.OwnerName = req.OwnerName
				t.Party = req.Party
				t.Date = req.Date
				t.Note = req.Note
				t.UpdatedAt = s.now()
				c := *t
				out = &c
				return nil
			}
		}
		return store.NotFound("truck", id)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteTruck(ctx context.Context, id string) error {
	return s.deleteRow("DeleteTruck", "truck", id, func(doc *document) bool {
		kept := doc.Trucks[:0]
		found := false
		for _, t := range doc.Trucks {
			if t.ID == id {
				found = true
				continue
			}
			kept = append(kept, t)
		}
		doc.Trucks = kept
		return found
	})
}

func (s *Store) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	e := &models.Expense{
		ID:        s.deps.NewID(),
		Date:      req.Date,
		Party:     req.Party,
		Category:  req.Category,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.write("CreateExpense", func(doc *document) error {
		doc.Expenses = append(doc.Expenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	var out []*models.Expense
	err := s.read("ListExpenses", func(doc *document) error {
		out = make([]*models.Expense, 0, len(doc.Expenses))
		for _, e := range doc.Expenses {
			c := *e
			out = append(out, &c)
		}
		sortByDateDesc(out, func(e *models.Expense) (string, time.Time, string) { return e.Date, e.CreatedAt, e.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteRow("DeleteExpense", "expense", id, func(doc *document) bool {
		kept := doc.Expenses[:0]
		found := false
		for _, e := range doc.Expenses {
			if e.ID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		doc.Expenses = kept
		return found
	})
}

func (s *Store) CreateInvestment(ctx context.Context, req *models.CreateInvestmentRequest) (*models.Investment, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	inv := &models.Investment{
		ID:        s.deps.NewID(),
		Date:      req.Date,
		Party:     req.Party,
		Source:    req.Source,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.write("CreateInvestment", func(doc *document) error {
		doc.Investments = append(doc.Investments, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Store) ListInvestments(ctx context.Context) ([]*models.Investment, error) {
	var out []*models.Investment
	err := s.read("ListInvestments", func(doc *document) error {
		out = make([]*models.Investment, 0, len(doc.Investments))
		for _, inv := range doc.Investments {
			c := *inv
			out = append(out, &c)
		}
		sortByDateDesc(out, func(i *models.Investment) (string, time.Time, string) { return i.Date, i.CreatedAt, i.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteInvestment(ctx context.Context, id string) error {
	return s.deleteRow("DeleteInvestment", "investment", id, func(doc *document) bool {
		kept := doc.Investments[:0]
		found := false
		for _, inv := range doc.Investments {
			if inv.ID == id {
				found = true
				continue
			}
			kept = append(kept, inv)
		}
		doc.Investments = kept
		return found
	})
}

func (s *Store) CreateChiniExpense(ctx context.Context, req *models.CreateChiniExpenseRequest) (*models.ChiniExpense, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	e := &models.ChiniExpense{
		ID:        s.deps.NewID(),
		Date:      req.Date,
		Party:     req.Party,
		Category:  req.Category,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.write("CreateChiniExpense", func(doc *document) error {
		doc.ChiniExpenses = append(doc.ChiniExpenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) ListChiniExpenses(ctx context.Context) ([]*models.ChiniExpense, error) {
	var out []*models.ChiniExpense
	err := s.read("ListChiniExpenses", func(doc *document) error {
		out = make([]*models.ChiniExpense, 0, len(doc.ChiniExpenses))
		for _, e := range doc.ChiniExpenses {
			c := *e
			out = append(out, &c)
		}
		sortByDateDesc(out, func(e *models.ChiniExpense) (string, time.Time, string) { return e.Date, e.CreatedAt, e.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteChiniExpense(ctx context.Context, id string) error {
	return s.deleteRow("DeleteChiniExpense", "chini expense", id, func(doc *document) bool {
		kept := doc.ChiniExpenses[:0]
		found := false
		for _, e := range doc.ChiniExpenses {
			if e.ID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		doc.ChiniExpenses = kept
		return found
	})
}

func (s *Store) CreateLandRecord(ctx context.Context, req *models.CreateLandRecordRequest) (*models.LandRecord, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	rec := &models.LandRecord{
		ID:          s.deps.NewID(),
		Date:        req.Date,
		Party:       req.Party,
		Description: req.Description,
		Area:        req.Area,
		Amount:      req.Amount,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.write("CreateLandRecord", func(doc *document) error {
		doc.LandRecords = append(doc.LandRecords, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) ListLandRecords(ctx context.Context) ([]*models.LandRecord, error) {
	var out []*models.LandRecord
	err := s.read("ListLandRecords", func(doc *document) error {
		out = make([]*models.LandRecord, 0, len(doc.LandRecords))
		for _, rec := range doc.LandRecords {
			c := *rec
			out = append(out, &c)
		}
		sortByDateDesc(out, func(r *models.LandRecord) (string, time.Time, string) { return r.Date, r.CreatedAt, r.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteLandRecord(ctx context.Context, id string) error {
	return s.deleteRow("DeleteLandRecord", "land record", id, func(doc *document) bool {
		kept := doc.LandRecords[:0]
		found := false
		for _, rec := range doc.LandRecords {
			if rec.ID == id {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		doc.LandRecords = kept
		return found
	})
}

func (s *Store) CreateVehicle(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	v := &models.Vehicle{
		ID:            s.deps.NewID(),
		Date:          req.Date,
		VehicleNumber: req.VehicleNumber,
		Party:         req.Party,
		Description:   req.Description,
		Amount:        req.Amount,
		Note:          req.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.write("CreateVehicle", func(doc *document) error {
		doc.Vehicles = append(doc.Vehicles, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	err := s.read("ListVehicles", func(doc *document) error {
		out = make([]*models.Vehicle, 0, len(doc.Vehicles))
		for _, v := range doc.Vehicles {
			c := *v
			out = append(out, &c)
		}
		sortByDateDesc(out, func(v *models.Vehicle) (string, time.Time, string) { return v.Date, v.CreatedAt, v.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	return s.deleteRow("DeleteVehicle", "vehicle", id, func(doc *document) bool {
		kept := doc.Vehicles[:0]
		found := false
		for _, v := range doc.Vehicles {
			if v.ID == id {
				found = true
				continue
			}
			kept = append(kept, v)
		}
		doc.Vehicles = kept
		return found
	})
}

// deleteRow wraps the shared validate + write + not-found plumbing
func (s *Store) deleteRow(op, entity, id string, remove func(doc *document) bool) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}
	return s.write(op, func(doc *document) error {
		if !remove(doc) {
			return store.NotFound(entity, id)
		}
		return nil
	})
}

// sortByDateDesc orders rows most-recent-first with the standard tie-breaks
func sortByDateDesc[T any](rows []T, key func(T) (string, time.Time, string)) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, ci, ii := key(rows[i])
		dj, cj, ij := key(rows[j])
		if di != dj {
			return di > dj
		}
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return ii > ij
	})
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

// Flat ledger rows all list newest-first: ORDER BY date DESC, created_at
// DESC, id DESC, matching the file backend's sort.
const ledgerOrder = ` ORDER BY date DESC, created_at DESC, id DESC`

func (s *Store) deleteRow(ctx context.Context, op, table, entity, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return store.Storagef(op, err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound(entity, id)
	}
	return nil
}

const truckColumns = `id, truck_number, model, owner_name, party, to_char(date, 'YYYY-MM-DD'), note, created_at, updated_at`

func scanTruck(row pgx.Row) (*models.Truck, error) {
	t := &models.Truck{}
	err := row.Scan(&t.ID, &t.TruckNumber, &t.Model, &t.OwnerName, &t.Party,
		&t.Date, &t.Note, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO trucks (id, truck_number, model, owner_name, party, date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, t.ID, t.TruckNumber, t.Model, t.OwnerName, t.Party, t.Date, t.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateTruck", err)
	}
	return t, nil
}

func (s *Store) ListTrucks(ctx context.Context) ([]*models.Truck, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+truckColumns+` FROM trucks`+ledgerOrder)
	if err != nil {
		return nil, store.Storagef("ListTrucks", err)
	}
	defer rows.Close()

	out := []*models.Truck{}
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, store.Storagef("ListTrucks", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListTrucks", err)
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

	row := s.pool.QueryRow(ctx, `
		UPDATE trucks SET truck_number = $2, model = $3, owner_name = $4,
			party = $5, date = $6, note = $7, updated_at = $8
		WHERE id = $1
		RETURNING `+truckColumns,
		id, req.TruckNumber, req.Model, req.OwnerName, req.Party, req.Date, req.Note, s.now())
	t, err := scanTruck(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("truck", id)
	}
	if err != nil {
		return nil, store.Storagef("UpdateTruck", err)
	}
	return t, nil
}

func (s *Store) DeleteTruck(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "DeleteTruck", "trucks", "truck", id)
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO expenses (id, date, party, category, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, e.ID, e.Date, e.Party, e.Category, e.Amount, e.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateExpense", err)
	}
	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), party, category, amount, note, created_at, updated_at
		FROM expenses`+ledgerOrder)
	if err != nil {
		return nil, store.Storagef("ListExpenses", err)
	}
	defer rows.Close()

	out := []*models.Expense{}
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Party, &e.Category, &e.Amount, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, store.Storagef("ListExpenses", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListExpenses", err)
	}
	return out, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "DeleteExpense", "expenses", "expense", id)
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO investments (id, date, party, source, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, inv.ID, inv.Date, inv.Party, inv.Source, inv.Amount, inv.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateInvestment", err)
	}
	return inv, nil
}

func (s *Store) ListInvestments(ctx context.Context) ([]*models.Investment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), party, source, amount, note, created_at, updated_at
		FROM investments`+ledgerOrder)
	if err != nil {
		return nil, store.Storagef("ListInvestments", err)
	}
	defer rows.Close()

	out := []*models.Investment{}
	for rows.Next() {
		inv := &models.Investment{}
		if err := rows.Scan(&inv.ID, &inv.Date, &inv.Party, &inv.Source, &inv.Amount, &inv.Note, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, store.Storagef("ListInvestments", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListInvestments", err)
	}
	return out, nil
}

func (s *Store) DeleteInvestment(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "DeleteInvestment", "investments", "investment", id)
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chini_expenses (id, date, party, category, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, e.ID, e.Date, e.Party, e.Category, e.Amount, e.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateChiniExpense", err)
	}
	return e, nil
}

func (s *Store) ListChiniExpenses(ctx context.Context) ([]*models.ChiniExpense, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), party, category, amount, note, created_at, updated_at
		FROM chini_expenses`+ledgerOrder)
	if err != nil {
		return nil, store.Storagef("ListChiniExpenses", err)
	}
	defer rows.Close()

	out := []*models.ChiniExpense{}
	for rows.Next() {
		e := &models.ChiniExpense{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Party, &e.Category, &e.Amount, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, store.Storagef("ListChiniExpenses", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListChiniExpenses", err)
	}
	return out, nil
}

func (s *Store) DeleteChiniExpense(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "DeleteChiniExpense", "chini_expenses", "chini expense", id)
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO land_records (id, date, party, description, area, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, rec.ID, rec.Date, rec.Party, rec.Description, rec.Area, rec.Amount, rec.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateLandRecord", err)
	}
	return rec, nil
}

func (s *Store) ListLandRecords(ctx context.Context) ([]*models.LandRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), party, description, area, amount, note, created_at, updated_at
		FROM land_records`+ledgerOrder)
	if err != nil {
		return nil, store.Storagef("ListLandRecords", err)
	}
	defer rows.Close()

	out := []*models.LandRecord{}
	for rows.Next() {
		rec := &models.LandRecord{}
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Party, &rec.Description, &rec.Area, &rec.Amount, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, store.Storagef("ListLandRecords", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListLandRecords", err)
	}
	return out, nil
}

func (s *Store) DeleteLandRecord(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "DeleteLandRecord", "land_records", "land record", id)
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
	_, err := s.pool.Exec(ctx, `
		INSERT INTO vehicles (id, date, vehicle_number, party, description, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, v.ID, v.Date, v.VehicleNumber, v.Party, v.Description, v.Amount, v.Note, now)
	if err != nil {
		return nil, store.Storagef("CreateVehicle", err)
	}
	return v, nil
}

func (s *Store) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, to_char(date, 'YYYY-MM-DD'), vehicle_number, party, description, amount, note, created_at, updated_at
		FROM vehicles`+ledgerOrder)
	if err != nil {
		return nil, store.Storagef("ListVehicles", err)
	}
	defer rows.Close()

	out := []*models.Vehicle{}
	for rows.Next() {
		v := &models.Vehicle{}
		if err := rows.Scan(&v.ID, &v.Date, &v.VehicleNumber, &v.Party, &v.Description, &v.Amount, &v.Note, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, store.Storagef("ListVehicles", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListVehicles", err)
	}
	return out, nil
}

func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "DeleteVehicle", "vehicles", "vehicle", id)
}

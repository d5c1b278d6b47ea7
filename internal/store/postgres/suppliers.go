package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ops-backend/internal/ledger"
	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

const supplierColumns = `id, name, phone, alternate_phone, email, gst_no, address,
	material_type, payment_terms, opening_balance, created_at, updated_at`

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	sup := &models.Supplier{}
	err := row.Scan(&sup.ID, &sup.Name, &sup.Phone, &sup.AlternatePhone, &sup.Email,
		&sup.GSTNo, &sup.Address, &sup.MaterialType, &sup.PaymentTerms,
		&sup.OpeningBalance, &sup.CreatedAt, &sup.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Store) CreateSupplier(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	sup := &models.Supplier{
		ID:             s.deps.NewID(),
		Name:           req.Name,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Email:          req.Email,
		GSTNo:          req.GSTNo,
		Address:        req.Address,
		MaterialType:   req.MaterialType,
		PaymentTerms:   req.PaymentTerms,
		OpeningBalance: req.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO suppliers (id, name, phone, alternate_phone, email, gst_no, address,
			material_type, payment_terms, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`, sup.ID, sup.Name, sup.Phone, sup.AlternatePhone, sup.Email, sup.GSTNo,
		sup.Address, sup.MaterialType, sup.PaymentTerms, sup.OpeningBalance, now)
	if err != nil {
		return nil, store.Storagef("CreateSupplier", err)
	}
	return sup, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name, id`)
	if err != nil {
		return nil, store.Storagef("ListSuppliers", err)
	}
	defer rows.Close()

	out := []*models.Supplier{}
	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, store.Storagef("ListSuppliers", err)
		}
		out = append(out, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListSuppliers", err)
	}
	return out, nil
}

func (s *Store) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}

	sup, err := scanSupplier(s.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("supplier", id)
	}
	if err != nil {
		return nil, store.Storagef("GetSupplier", err)
	}
	return sup, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, req *models.UpdateSupplierRequest) (*models.Supplier, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE suppliers SET name = $2, phone = $3, alternate_phone = $4, email = $5,
			gst_no = $6, address = $7, material_type = $8, payment_terms = $9,
			opening_balance = $10, updated_at = $11
		WHERE id = $1
		RETURNING `+supplierColumns,
		id, req.Name, req.Phone, req.AlternatePhone, req.Email, req.GSTNo,
		req.Address, req.MaterialType, req.PaymentTerms, req.OpeningBalance, s.now())
	sup, err := scanSupplier(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("supplier", id)
	}
	if err != nil {
		return nil, store.Storagef("UpdateSupplier", err)
	}
	return sup, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	// transactions go with the supplier via ON DELETE CASCADE
	tag, err := s.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return store.Storagef("DeleteSupplier", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("supplier", id)
	}
	return nil
}

const txColumns = `id, supplier_id, to_char(date, 'YYYY-MM-DD'), type, amount,
	truck_number, challan_no, material, quantity, rate, paid_now,
	payment_mode, COALESCE(payment_ref, ''), note, is_auto_payment,
	linked_transaction_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.SupplierTransaction, error) {
	tx := &models.SupplierTransaction{}
	err := row.Scan(&tx.ID, &tx.SupplierID, &tx.Date, &tx.Type, &tx.Amount,
		&tx.TruckNumber, &tx.ChallanNo, &tx.Material, &tx.Quantity, &tx.Rate,
		&tx.PaidNow, &tx.PaymentMode, &tx.PaymentRef, &tx.Note,
		&tx.IsAutoPayment, &tx.LinkedTransactionID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Store) supplierExists(ctx context.Context, q queryer, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return store.NotFound("supplier", id)
	}
	return nil
}

func (s *Store) RecordDelivery(ctx context.Context, supplierID string, req *models.RecordDeliveryRequest) (*store.DeliveryResult, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	truck := &models.SupplierTransaction{
		ID:          s.deps.NewID(),
		SupplierID:  supplierID,
		Date:        req.Date,
		Type:        models.SupplierTxTruck,
		Amount:      req.Amount,
		TruckNumber: req.TruckNumber,
		ChallanNo:   req.ChallanNo,
		Material:    req.Material,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		PaidNow:     req.PaidNow,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	result := &store.DeliveryResult{Truck: truck}
	if req.PaidNow > 0 {
		result.AutoPayment = &models.SupplierTransaction{
			ID:                  s.deps.NewID(),
			SupplierID:          supplierID,
			Date:                req.Date,
			Type:                models.SupplierTxPayment,
			Amount:              req.PaidNow,
			PaymentMode:         req.PaymentMode,
			PaymentRef:          req.PaymentRef,
			IsAutoPayment:       true,
			LinkedTransactionID: truck.ID,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
	}

	// One transaction covers both inserts: a truck row can never land
	// without its auto payment, or the other way round.
	err := pgx.BeginFunc(ctx, s.pool, func(dbtx pgx.Tx) error {
		if err := s.supplierExists(ctx, dbtx, supplierID); err != nil {
			return err
		}
		if err := insertTransaction(ctx, dbtx, truck); err != nil {
			return err
		}
		if result.AutoPayment != nil {
			return insertTransaction(ctx, dbtx, result.AutoPayment)
		}
		return nil
	})
	if err != nil {
		return nil, store.Storagef("RecordDelivery", err)
	}
	return result, nil
}

func (s *Store) RecordSupplierPayment(ctx context.Context, supplierID string, req *models.RecordSupplierPaymentRequest) (*models.SupplierTransaction, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	tx := &models.SupplierTransaction{
		ID:          s.deps.NewID(),
		SupplierID:  supplierID,
		Date:        req.Date,
		Type:        models.SupplierTxPayment,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		PaymentRef:  req.PaymentRef,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := pgx.BeginFunc(ctx, s.pool, func(dbtx pgx.Tx) error {
		if err := s.supplierExists(ctx, dbtx, supplierID); err != nil {
			return err
		}
		return insertTransaction(ctx, dbtx, tx)
	})
	if err != nil {
		return nil, store.Storagef("RecordSupplierPayment", err)
	}
	return tx, nil
}

func (s *Store) ListSupplierTransactions(ctx context.Context, supplierID string) ([]*models.SupplierTransaction, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}
	if err := s.supplierExists(ctx, s.pool, supplierID); err != nil {
		return nil, store.Storagef("ListSupplierTransactions", err)
	}
	return s.transactionsFor(ctx, supplierID)
}

// transactionsFor returns a supplier's raw rows in chronological order,
// matching the ledger engine's tie-break chain.
func (s *Store) transactionsFor(ctx context.Context, supplierID string) ([]*models.SupplierTransaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+txColumns+`
		FROM supplier_transactions
		WHERE supplier_id = $1
		ORDER BY date, created_at, id
	`, supplierID)
	if err != nil {
		return nil, store.Storagef("ListSupplierTransactions", err)
	}
	defer rows.Close()

	out := []*models.SupplierTransaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, store.Storagef("ListSupplierTransactions", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListSupplierTransactions", err)
	}
	return out, nil
}

func (s *Store) DeleteSupplierTransaction(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	err := pgx.BeginFunc(ctx, s.pool, func(dbtx pgx.Tx) error {
		var linked string
		err := dbtx.QueryRow(ctx, `SELECT linked_transaction_id FROM supplier_transactions WHERE id = $1`, id).Scan(&linked)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound("supplier transaction", id)
		}
		if err != nil {
			return err
		}
		// remove the row, the counterpart it points to, and anything
		// pointing at it; a linked pair always leaves together
		_, err = dbtx.Exec(ctx, `
			DELETE FROM supplier_transactions
			WHERE id = $1 OR linked_transaction_id = $1 OR ($2 <> '' AND id = $2)
		`, id, linked)
		return err
	})
	return store.Storagef("DeleteSupplierTransaction", err)
}

func (s *Store) SupplierStatement(ctx context.Context, supplierID string) (*store.SupplierStatement, error) {
	sup, err := s.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactionsFor(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	rows := ledger.WithBalances(sup.OpeningBalance, txs)
	return &store.SupplierStatement{
		Supplier: *sup,
		Rows:     ledger.DisplayOrder(rows),
		Summary:  ledger.Summarize(sup, txs),
	}, nil
}

// queryer is the subset of pgx shared by the pool and a transaction
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertTransaction(ctx context.Context, dbtx pgx.Tx, tx *models.SupplierTransaction) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO supplier_transactions (id, supplier_id, date, type, amount,
			truck_number, challan_no, material, quantity, rate, paid_now,
			payment_mode, payment_ref, note, is_auto_payment,
			linked_transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
	`, tx.ID, tx.SupplierID, tx.Date, tx.Type, tx.Amount, tx.TruckNumber,
		tx.ChallanNo, tx.Material, tx.Quantity, tx.Rate, tx.PaidNow,
		tx.PaymentMode, tx.PaymentRef, tx.Note, tx.IsAutoPayment,
		tx.LinkedTransactionID, tx.CreatedAt)
	return err
}

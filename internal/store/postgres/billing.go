package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

const pgUniqueViolation = "23505"

func invoiceConflict(err error, invoiceNo string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &store.ConflictError{Entity: "bill", Reason: "invoice number " + invoiceNo + " already exists"}
	}
	return err
}

func (s *Store) SaveBill(ctx context.Context, req *models.SaveBillRequest) (*models.Bill, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	bill := &models.Bill{
		ID:        s.deps.NewID(),
		InvoiceNo: req.InvoiceNo,
		BillDate:  req.BillDate,
		DueDate:   req.DueDate,
		Items:     billItems(req.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	bill.CalculateTotals()

	err := pgx.BeginFunc(ctx, s.pool, func(dbtx pgx.Tx) error {
		company, err := s.upsertCompany(ctx, dbtx, &req.Company)
		if err != nil {
			return err
		}
		bill.Company = company
		if err := insertBill(ctx, dbtx, bill); err != nil {
			return invoiceConflict(err, req.InvoiceNo)
		}
		return insertBillItems(ctx, dbtx, bill)
	})
	if err != nil {
		return nil, store.Storagef("SaveBill", err)
	}
	return bill, nil
}

func (s *Store) UpdateBill(ctx context.Context, id string, req *models.SaveBillRequest) (*models.Bill, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	bill := &models.Bill{
		ID:        id,
		InvoiceNo: req.InvoiceNo,
		BillDate:  req.BillDate,
		DueDate:   req.DueDate,
		Items:     billItems(req.Items),
		UpdatedAt: now,
	}
	bill.CalculateTotals()

	err := pgx.BeginFunc(ctx, s.pool, func(dbtx pgx.Tx) error {
		err := dbtx.QueryRow(ctx, `SELECT created_at FROM bills WHERE id = $1`, id).Scan(&bill.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return store.NotFound("bill", id)
		}
		if err != nil {
			return err
		}

		company, err := s.upsertCompany(ctx, dbtx, &req.Company)
		if err != nil {
			return err
		}
		bill.Company = company

		if _, err := dbtx.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id); err != nil {
			return err
		}
		if err := insertBill(ctx, dbtx, bill); err != nil {
			return invoiceConflict(err, req.InvoiceNo)
		}
		return insertBillItems(ctx, dbtx, bill)
	})
	if err != nil {
		return nil, store.Storagef("UpdateBill", err)
	}
	return bill, nil
}

const billColumns = `id, invoice_no, to_char(bill_date, 'YYYY-MM-DD'),
	COALESCE(to_char(due_date, 'YYYY-MM-DD'), ''),
	company_id, company_gstin, company_name, company_address, company_state,
	company_state_code, company_phone, company_email,
	company_created_at, company_updated_at,
	subtotal, total_gst, grand_total, created_at, updated_at`

func scanBill(row pgx.Row) (*models.Bill, error) {
	b := &models.Bill{}
	err := row.Scan(&b.ID, &b.InvoiceNo, &b.BillDate, &b.DueDate,
		&b.Company.ID, &b.Company.GSTIN, &b.Company.Name, &b.Company.Address,
		&b.Company.State, &b.Company.StateCode, &b.Company.Phone, &b.Company.Email,
		&b.Company.CreatedAt, &b.Company.UpdatedAt,
		&b.Subtotal, &b.TotalGST, &b.GrandTotal, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}

	b, err := scanBill(s.pool.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.NotFound("bill", id)
	}
	if err != nil {
		return nil, store.Storagef("GetBill", err)
	}
	if err := s.loadBillItems(ctx, b); err != nil {
		return nil, store.Storagef("GetBill", err)
	}
	return b, nil
}

func (s *Store) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+billColumns+` FROM bills
		ORDER BY bill_date DESC, created_at DESC, id DESC
	`)
	if err != nil {
		return nil, store.Storagef("ListBills", err)
	}
	defer rows.Close()

	out := []*models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, store.Storagef("ListBills", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListBills", err)
	}
	for _, b := range out {
		if err := s.loadBillItems(ctx, b); err != nil {
			return nil, store.Storagef("ListBills", err)
		}
	}
	return out, nil
}

func (s *Store) DeleteBill(ctx context.Context, id string) error {
	// items go with the bill via ON DELETE CASCADE
	return s.deleteRow(ctx, "DeleteBill", "bills", "bill", id)
}

func (s *Store) ListBillingCompanies(ctx context.Context) ([]*models.BillingCompany, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, gstin, name, address, state, state_code, phone, email, created_at, updated_at
		FROM billing_companies
		ORDER BY name, gstin
	`)
	if err != nil {
		return nil, store.Storagef("ListBillingCompanies", err)
	}
	defer rows.Close()

	out := []*models.BillingCompany{}
	for rows.Next() {
		c := &models.BillingCompany{}
		if err := rows.Scan(&c.ID, &c.GSTIN, &c.Name, &c.Address, &c.State, &c.StateCode,
			&c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, store.Storagef("ListBillingCompanies", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListBillingCompanies", err)
	}
	return out, nil
}

// upsertCompany registers the bill's company by normalized GSTIN and returns
// the snapshot to embed. A blank GSTIN skips the registry; the bill then
// carries an unregistered snapshot.
func (s *Store) upsertCompany(ctx context.Context, dbtx pgx.Tx, in *models.BillCompanyInput) (models.BillingCompany, error) {
	now := s.now()
	gstin := models.NormalizeGSTIN(in.GSTIN)
	if gstin == "" {
		return models.BillingCompany{
			Name:      in.Name,
			Address:   in.Address,
			State:     in.State,
			StateCode: in.StateCode,
			Phone:     in.Phone,
			Email:     in.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}

	// GSTIN is the identity; everything else follows the new bill
	c := models.BillingCompany{}
	err := dbtx.QueryRow(ctx, `
		INSERT INTO billing_companies (id, gstin, name, address, state, state_code, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (gstin) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			state = EXCLUDED.state,
			state_code = EXCLUDED.state_code,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
		RETURNING id, gstin, name, address, state, state_code, phone, email, created_at, updated_at
	`, s.deps.NewID(), gstin, in.Name, in.Address, in.State, in.StateCode, in.Phone, in.Email, now).
		Scan(&c.ID, &c.GSTIN, &c.Name, &c.Address, &c.State, &c.StateCode,
			&c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.BillingCompany{}, err
	}
	return c, nil
}

func insertBill(ctx context.Context, dbtx pgx.Tx, b *models.Bill) error {
	var dueDate any
	if b.DueDate != "" {
		dueDate = b.DueDate
	}
	_, err := dbtx.Exec(ctx, `
		INSERT INTO bills (id, invoice_no, bill_date, due_date,
			company_id, company_gstin, company_name, company_address, company_state,
			company_state_code, company_phone, company_email,
			company_created_at, company_updated_at,
			subtotal, total_gst, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, b.ID, b.InvoiceNo, b.BillDate, dueDate,
		b.Company.ID, b.Company.GSTIN, b.Company.Name, b.Company.Address, b.Company.State,
		b.Company.StateCode, b.Company.Phone, b.Company.Email,
		b.Company.CreatedAt, b.Company.UpdatedAt,
		b.Subtotal, b.TotalGST, b.GrandTotal, b.CreatedAt, b.UpdatedAt)
	return err
}

func insertBillItems(ctx context.Context, dbtx pgx.Tx, b *models.Bill) error {
	for i, it := range b.Items {
		_, err := dbtx.Exec(ctx, `
			INSERT INTO bill_items (bill_id, position, description, hsn_code,
				quantity, rate, gst_percent, taxable_value, gst_amount, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, b.ID, i, it.Description, it.HSNCode, it.Quantity, it.Rate,
			it.GSTPercent, it.TaxableValue, it.GSTAmount, it.LineTotal)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadBillItems(ctx context.Context, b *models.Bill) error {
	rows, err := s.pool.Query(ctx, `
		SELECT description, hsn_code, quantity, rate, gst_percent,
			taxable_value, gst_amount, line_total
		FROM bill_items WHERE bill_id = $1 ORDER BY position
	`, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	b.Items = []models.BillItem{}
	for rows.Next() {
		it := models.BillItem{}
		if err := rows.Scan(&it.Description, &it.HSNCode, &it.Quantity, &it.Rate,
			&it.GSTPercent, &it.TaxableValue, &it.GSTAmount, &it.LineTotal); err != nil {
			return err
		}
		b.Items = append(b.Items, it)
	}
	return rows.Err()
}

func billItems(in []models.BillItemInput) []models.BillItem {
	items := make([]models.BillItem, 0, len(in))
	for _, it := range in {
		items = append(items, models.BillItem{
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			GSTPercent:  it.GSTPercent,
		})
	}
	return items
}

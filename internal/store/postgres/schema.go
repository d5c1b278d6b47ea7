package postgres

import (
	"context"

	"ops-backend/internal/store"
)

// schemaStatements evolve the database in place. Base tables use CREATE TABLE
// IF NOT EXISTS; every column added after the original schema gets its own
// ALTER TABLE ... ADD COLUMN IF NOT EXISTS, so existing deployments upgrade
// without a destructive migration.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS suppliers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		gst_no TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		material_type TEXT NOT NULL DEFAULT '',
		opening_balance NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE suppliers ADD COLUMN IF NOT EXISTS alternate_phone TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE suppliers ADD COLUMN IF NOT EXISTS payment_terms TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS supplier_transactions (
		id TEXT PRIMARY KEY,
		supplier_id TEXT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		type TEXT NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		truck_number TEXT NOT NULL DEFAULT '',
		challan_no TEXT NOT NULL DEFAULT '',
		material TEXT NOT NULL DEFAULT '',
		quantity NUMERIC(14,3) NOT NULL DEFAULT 0,
		rate NUMERIC(14,2) NOT NULL DEFAULT 0,
		paid_now NUMERIC(14,2) NOT NULL DEFAULT 0,
		payment_mode TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		is_auto_payment BOOLEAN NOT NULL DEFAULT FALSE,
		linked_transaction_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE supplier_transactions ADD COLUMN IF NOT EXISTS payment_ref TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_supplier_transactions_supplier ON supplier_transactions(supplier_id, date)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		monthly_salary NUMERIC(14,2) NOT NULL,
		joining_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE employees ADD COLUMN IF NOT EXISTS active BOOLEAN NOT NULL DEFAULT TRUE`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (employee_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS salary_advances (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_salary_advances_employee ON salary_advances(employee_id, date)`,

	`CREATE TABLE IF NOT EXISTS salary_ledgers (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL UNIQUE REFERENCES employees(id) ON DELETE CASCADE,
		total_salary NUMERIC(14,2) NOT NULL DEFAULT 0,
		amount_given NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS trucks (
		id TEXT PRIMARY KEY,
		truck_number TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		owner_name TEXT NOT NULL DEFAULT '',
		party TEXT NOT NULL,
		date DATE NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		party TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS investments (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		party TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS chini_expenses (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		party TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS land_records (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		party TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		area TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		vehicle_number TEXT NOT NULL,
		party TEXT NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE vehicles ADD COLUMN IF NOT EXISTS description TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS billing_companies (
		id TEXT PRIMARY KEY,
		gstin TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		state_code TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		invoice_no TEXT NOT NULL UNIQUE,
		bill_date DATE NOT NULL,
		due_date DATE,
		company_id TEXT NOT NULL DEFAULT '',
		company_gstin TEXT NOT NULL DEFAULT '',
		company_name TEXT NOT NULL DEFAULT '',
		company_address TEXT NOT NULL DEFAULT '',
		company_state TEXT NOT NULL DEFAULT '',
		company_state_code TEXT NOT NULL DEFAULT '',
		company_phone TEXT NOT NULL DEFAULT '',
		company_email TEXT NOT NULL DEFAULT '',
		subtotal NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_gst NUMERIC(14,2) NOT NULL DEFAULT 0,
		grand_total NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE bills ADD COLUMN IF NOT EXISTS company_created_at TIMESTAMPTZ NOT NULL DEFAULT 'epoch'`,
	`ALTER TABLE bills ADD COLUMN IF NOT EXISTS company_updated_at TIMESTAMPTZ NOT NULL DEFAULT 'epoch'`,

	`CREATE TABLE IF NOT EXISTS bill_items (
		bill_id TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
		position INT NOT NULL,
		description TEXT NOT NULL,
		hsn_code TEXT NOT NULL DEFAULT '',
		quantity NUMERIC(14,3) NOT NULL,
		rate NUMERIC(14,2) NOT NULL,
		gst_percent NUMERIC(5,2) NOT NULL,
		taxable_value NUMERIC(14,2) NOT NULL,
		gst_amount NUMERIC(14,2) NOT NULL,
		line_total NUMERIC(14,2) NOT NULL,
		PRIMARY KEY (bill_id, position)
	)`,
}

func (s *Store) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return store.Storagef("initSchema", err)
		}
	}
	s.log.Info().Int("statements", len(schemaStatements)).Msg("schema up to date")
	return nil
}

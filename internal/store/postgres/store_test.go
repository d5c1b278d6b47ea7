package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"ops-backend/internal/store"
	"ops-backend/internal/store/postgres"
	"ops-backend/internal/store/storetest"
)

// TestContract needs a real database:
//
//	TEST_DATABASE_URL=postgres://postgres@localhost:5432/ops_test go test ./internal/store/postgres/
func TestContract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		truncateAll(t, ctx, dsn)

		s, err := postgres.New(ctx, dsn, storetest.Deps(), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

// truncateAll clears every domain table so each subtest starts empty. Users
// stay; the store reseeds them idempotently anyway.
func truncateAll(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		DO $$
		BEGIN
			IF to_regclass('suppliers') IS NOT NULL THEN
				TRUNCATE suppliers, supplier_transactions, employees, attendance,
					salary_advances, salary_ledgers, trucks, expenses, investments,
					chini_expenses, land_records, vehicles, billing_companies,
					bills, bill_items CASCADE;
			END IF;
		END
		$$;
	`)
	require.NoError(t, err)
}

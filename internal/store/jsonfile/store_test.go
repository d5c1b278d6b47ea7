package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
	"ops-backend/internal/store/jsonfile"
	"ops-backend/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := jsonfile.New(filepath.Join(t.TempDir(), "ops.json"), storetest.Deps(), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ops.json")
	deps := storetest.Deps()

	s, err := jsonfile.New(path, deps, zerolog.Nop())
	require.NoError(t, err)
	sup, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: "Ganga Bardana", OpeningBalance: 1000})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// a second store over the same file sees the first one's writes
	s2, err := jsonfile.New(path, deps, zerolog.Nop())
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetSupplier(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ganga Bardana", got.Name)
	assert.Equal(t, 1000.0, got.OpeningBalance)

	// seeded credentials survive the round trip too
	_, err = s2.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestSeedsUsersOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ops.json")

	s, err := jsonfile.New(path, storetest.Deps(), zerolog.Nop())
	require.NoError(t, err)
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.NoError(t, s.Close())

	s2, err := jsonfile.New(path, storetest.Deps(), zerolog.Nop())
	require.NoError(t, err)
	defer s2.Close()
	again, err := s2.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 2, "reopen must not reseed")
}

func TestCorruptDocumentFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := jsonfile.New(path, storetest.Deps(), zerolog.Nop())
	require.Error(t, err)
	var se *store.StorageError
	assert.ErrorAs(t, err, &se)
}

func TestCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ops.json")

	s, err := jsonfile.New(path, storetest.Deps(), zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

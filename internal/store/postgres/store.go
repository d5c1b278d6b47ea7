// Package postgres implements the persistence contract over PostgreSQL.
//
// Initialization runs guarded DDL only (CREATE TABLE IF NOT EXISTS and
// ALTER TABLE ... ADD COLUMN IF NOT EXISTS), so pointing a new binary at an
// existing database upgrades it in place and re-running init is always safe.
// Isolation comes from the database itself; every multi-row write runs in a
// single transaction.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"ops-backend/internal/auth"
	"ops-backend/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
	deps store.Deps
	log  zerolog.Logger
}

// New connects, evolves the schema and seeds the default users
func New(ctx context.Context, dsn string, deps store.Deps, log zerolog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, store.Storagef("init", err)
	}
	cfg.ConnConfig.Tracer = &queryTracer{}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, store.Storagef("init", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, store.Storagef("init", err)
	}

	s := &Store{
		pool: pool,
		deps: deps.WithDefaults(),
		log:  log.With().Str("backend", "postgres").Logger(),
	}

	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.seedUsers(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s.log.Info().Msg("postgres store ready")
	return s, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) now() time.Time { return s.deps.Clock().UTC() }

// defaultUsers mirror the file backend's seed so either backend starts usable
var defaultUsers = []struct {
	Username string
	Name     string
	Role     string
	Password string
}{
	{Username: "admin", Name: "Administrator", Role: "admin", Password: "admin123"},
	{Username: "munshi", Name: "Munshi", Role: "munshi", Password: "munshi123"},
}

func (s *Store) seedUsers(ctx context.Context) error {
	now := s.now()
	for _, d := range defaultUsers {
		hash, err := auth.HashPassword(d.Password)
		if err != nil {
			return store.Storagef("seedUsers", err)
		}
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO users (id, username, name, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (username) DO NOTHING
		`, s.deps.NewID(), d.Username, d.Name, hash, d.Role, now)
		if err != nil {
			return store.Storagef("seedUsers", err)
		}
		if tag.RowsAffected() > 0 {
			s.log.Info().Str("username", d.Username).Msg("seeded default user")
		}
	}
	return nil
}

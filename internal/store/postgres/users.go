package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ops-backend/internal/auth"
	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if err := store.CheckID("username", username); err != nil {
		return nil, err
	}

	u := &models.User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, name, password_hash, role, created_at, updated_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrInvalidCredentials
	}
	if err != nil {
		return nil, store.Storagef("Authenticate", err)
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, store.ErrInvalidCredentials
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, name, password_hash, role, created_at, updated_at
		FROM users ORDER BY username
	`)
	if err != nil {
		return nil, store.Storagef("ListUsers", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, store.Storagef("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Storagef("ListUsers", err)
	}
	return users, nil
}

package jsonfile

import (
	"context"

	"ops-backend/internal/auth"
	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if err := store.CheckID("username", username); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.read("Authenticate", func(doc *document) error {
		for _, u := range doc.Users {
			if u.Username == username {
				if !auth.VerifyPassword(u.PasswordHash, password) {
					return store.ErrInvalidCredentials
				}
				c := *u
				user = &c
				return nil
			}
		}
		return store.ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.read("ListUsers", func(doc *document) error {
		users = make([]*models.User, 0, len(doc.Users))
		for _, u := range doc.Users {
			c := *u
			users = append(users, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

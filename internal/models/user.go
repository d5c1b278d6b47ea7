package models

import "time"

// User is a storage record, not an API shape; the hash must survive the file
// backend's JSON round trip. Strip it before handing users to any transport.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"` // admin or munshi
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Package auth hashes and verifies the credentials of the seeded users.
// Token issuance and transport live with the embedding application.
package auth

import "golang.org/x/crypto/bcrypt"

// Cost 10 is the bcrypt default; login volume here is a handful of staff.
const bcryptCost = bcrypt.DefaultCost

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

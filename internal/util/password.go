package util

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost the account records were originally created
// with. Raising it only affects newly written hashes.
const BcryptCost = 10

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

func HashPassword(password string) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// Malformed or empty hashes fail closed.
func CheckPassword(password string, hash []byte) bool {
	match, err := VerifyPassword(password, hash)
	return err == nil && match
}

// VerifyPassword distinguishes a wrong password (false, nil) from a stored
// hash that cannot be interpreted at all (false, err).
func VerifyPassword(password string, hash []byte) (bool, error) {
	if len(hash) == 0 {
		return false, errors.New("empty password hash")
	}
	if len(password) == 0 {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. It is fixed at registration time;
// this core never mutates it afterwards.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleTeacher       Role = "teacher"
	RoleStudent       Role = "student"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdministrator, RoleTeacher, RoleStudent:
		return Role(raw), nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PhotoURL     *string   `db:"photo_url" json:"photo_url,omitempty"`
	RefreshToken *string   `db:"refresh_token" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PublicView strips credential material before the account crosses the
// transport boundary.
func (a *Account) PublicView() Account {
	clone := *a
	clone.PasswordHash = nil
	clone.RefreshToken = nil
	return clone
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	AccountID uuid.UUID  `db:"account_id" json:"account_id"`
	LastName  string     `db:"last_name" json:"last_name"`
	FirstName string     `db:"first_name" json:"first_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	ClassName string     `db:"class_name" json:"class_name"`
	City      *string    `db:"city" json:"city,omitempty"`
	Email     string     `db:"email" json:"email"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// DefaultClassName is assigned until an administrator places the student.
const DefaultClassName = "Unassigned"

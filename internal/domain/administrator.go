package domain

import (
	"time"

	"github.com/google/uuid"
)

type AdministratorProfile struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	AccountID uuid.UUID  `db:"account_id" json:"account_id"`
	LastName  string     `db:"last_name" json:"last_name"`
	FirstName string     `db:"first_name" json:"first_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Function  string     `db:"function" json:"function"`
	Email     string     `db:"email" json:"email"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

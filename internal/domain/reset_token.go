package domain

import "time"

// ResetToken is a single-use opaque credential mailed out as a reset link.
// It is deleted on successful consumption; expired tokens are treated as
// absent regardless of physical deletion.
type ResetToken struct {
	Email     string    `db:"email" json:"email"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (t *ResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

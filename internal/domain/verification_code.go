package domain

import "time"

// VerificationCode gates registration: proof of control over an email address.
// At most one live record exists per email; a re-request overwrites it.
type VerificationCode struct {
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (c *VerificationCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

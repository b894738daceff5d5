package ports

import (
	"context"
	"time"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type VerificationCodeRepository interface {
	// Upsert stores the code keyed by email, replacing any prior code for
	// that address. Last writer wins.
	Upsert(ctx context.Context, email, code string, expiresAt time.Time) error
	FindByEmail(ctx context.Context, email string) (*domain.VerificationCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}

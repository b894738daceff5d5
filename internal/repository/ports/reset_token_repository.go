package ports

import (
	"context"
	"time"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type ResetTokenRepository interface {
	// Replace stores a fresh token for the email and removes any
	// outstanding tokens for the same address.
	Replace(ctx context.Context, email, token string, expiresAt time.Time) error
	FindByToken(ctx context.Context, token string) (*domain.ResetToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type AccountRepository interface {
	// Create inserts a new account. The unique index on email is the
	// race-breaker for concurrent registrations; callers translate the
	// unique-violation error.
	Create(ctx context.Context, email, name string, passwordHash []byte, role domain.Role) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateInfo(ctx context.Context, id uuid.UUID, name, email *string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error
	UpdatePasswordByEmail(ctx context.Context, email string, passwordHash []byte) error
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, refreshToken *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

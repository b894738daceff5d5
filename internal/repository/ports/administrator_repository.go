package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type AdministratorUpdate struct {
	LastName  *string
	FirstName *string
	BirthDate *time.Time
	Function  *string
	Email     *string
}

type AdministratorRepository interface {
	Create(ctx context.Context, profile *domain.AdministratorProfile) (*domain.AdministratorProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.AdministratorProfile, error)
	Update(ctx context.Context, id uuid.UUID, in AdministratorUpdate) (*domain.AdministratorProfile, error)
}

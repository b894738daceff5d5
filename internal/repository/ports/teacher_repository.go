package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
)

type TeacherUpdate struct {
	LastName  *string
	FirstName *string
	BirthDate *time.Time
	Subject   *string
	Email     *string
}

type TeacherRepository interface {
	Create(ctx context.Context, profile *domain.TeacherProfile) (*domain.TeacherProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TeacherProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.TeacherProfile, error)
	List(ctx context.Context, search string) ([]domain.TeacherProfile, error)
	Update(ctx context.Context, id uuid.UUID, in TeacherUpdate) (*domain.TeacherProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

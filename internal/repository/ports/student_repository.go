package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
)

// StudentUpdate carries optional profile fields; nil pointers leave the
// stored value untouched.
type StudentUpdate struct {
	LastName  *string
	FirstName *string
	BirthDate *time.Time
	ClassName *string
	City      *string
	Email     *string
}

type StudentRepository interface {
	Create(ctx context.Context, profile *domain.StudentProfile) (*domain.StudentProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StudentProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.StudentProfile, error)
	// List returns students matching the search term against name, email
	// and class, or all students when search is empty.
	List(ctx context.Context, search string) ([]domain.StudentProfile, error)
	Update(ctx context.Context, id uuid.UUID, in StudentUpdate) (*domain.StudentProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

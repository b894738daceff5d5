package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

type TeacherService struct {
	teachers ports.TeacherRepository
	accounts ports.AccountRepository
	auth     *AuthService
}

func NewTeacherService(teachers ports.TeacherRepository, accounts ports.AccountRepository, auth *AuthService) *TeacherService {
	return &TeacherService{teachers: teachers, accounts: accounts, auth: auth}
}

type CreateTeacherInput struct {
	Email     string
	Password  string
	LastName  string
	FirstName string
	BirthDate *time.Time
	Subject   string
}

func (s *TeacherService) Create(ctx context.Context, in CreateTeacherInput) (*domain.TeacherProfile, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrValidation)
	}

	name := strings.TrimSpace(in.FirstName + " " + in.LastName)
	account, err := s.auth.RegisterByAdmin(ctx, in.Email, name, in.Password, domain.RoleTeacher)
	if err != nil {
		return nil, err
	}

	// The bootstrap entry point already paired the account with a bare
	// teacher profile; fill it in with the submitted data.
	profile, err := s.teachers.FindByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(in.Subject)
	return s.teachers.Update(ctx, profile.ID, ports.TeacherUpdate{
		LastName:  &in.LastName,
		FirstName: &in.FirstName,
		BirthDate: in.BirthDate,
		Subject:   &subject,
	})
}

func (s *TeacherService) List(ctx context.Context, search string) ([]domain.TeacherProfile, error) {
	return s.teachers.List(ctx, strings.TrimSpace(search))
}

func (s *TeacherService) Get(ctx context.Context, id uuid.UUID) (*domain.TeacherProfile, error) {
	profile, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update writes the account first since it owns the unique email index; a
// conflict there leaves the profile untouched.
func (s *TeacherService) Update(ctx context.Context, id uuid.UUID, in ports.TeacherUpdate) (*domain.TeacherProfile, error) {
	profile, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	first, last := profile.FirstName, profile.LastName
	if in.FirstName != nil {
		first = *in.FirstName
	}
	if in.LastName != nil {
		last = *in.LastName
	}
	name := strings.TrimSpace(first + " " + last)
	if _, err := s.accounts.UpdateInfo(ctx, profile.AccountID, &name, in.Email); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	updated, err := s.teachers.Update(ctx, id, in)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *TeacherService) Delete(ctx context.Context, id uuid.UUID) error {
	profile, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrTeacherNotFound
		}
		return err
	}
	if err := s.teachers.Delete(ctx, id); err != nil {
		return err
	}
	return s.accounts.Delete(ctx, profile.AccountID)
}

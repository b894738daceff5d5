package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

// StudentService backs the administrator-facing student screens: each student
// is an account plus a student profile, created and removed together.
type StudentService struct {
	students ports.StudentRepository
	accounts ports.AccountRepository
	auth     *AuthService
}

func NewStudentService(students ports.StudentRepository, accounts ports.AccountRepository, auth *AuthService) *StudentService {
	return &StudentService{students: students, accounts: accounts, auth: auth}
}

type CreateStudentInput struct {
	Email     string
	Password  string
	LastName  string
	FirstName string
	BirthDate *time.Time
	ClassName string
	City      *string
}

// Create provisions the account through the administrator-bootstrap entry
// point (no verification code), which already pairs it with a bare student
// profile, then fills that profile in with the submitted data.
func (s *StudentService) Create(ctx context.Context, in CreateStudentInput) (*domain.StudentProfile, error) {
	name := strings.TrimSpace(in.FirstName + " " + in.LastName)
	account, err := s.auth.RegisterByAdmin(ctx, in.Email, name, in.Password, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	profile, err := s.students.FindByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	update := ports.StudentUpdate{
		LastName:  &in.LastName,
		FirstName: &in.FirstName,
		BirthDate: in.BirthDate,
		City:      in.City,
	}
	if in.ClassName != "" {
		update.ClassName = &in.ClassName
	}
	return s.students.Update(ctx, profile.ID, update)
}

func (s *StudentService) List(ctx context.Context, search string) ([]domain.StudentProfile, error) {
	return s.students.List(ctx, strings.TrimSpace(search))
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*domain.StudentProfile, error) {
	profile, err := s.students.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update keeps the linked account's name and email in step with the profile.
// The account carries the unique email index, so it is written first; a
// conflict there leaves the profile untouched.
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, in ports.StudentUpdate) (*domain.StudentProfile, error) {
	profile, err := s.students.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStudentNotFound
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

	updated, err := s.students.Update(ctx, id, in)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the profile and its account; outstanding session tokens for
// the account die at the next verification.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	profile, err := s.students.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrStudentNotFound
		}
		return err
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	return s.accounts.Delete(ctx, profile.AccountID)
}

package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/media"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

// ProfileView pairs the sanitized account with its role-specific profile.
// Exactly one of the profile fields is set, matching the account role.
type ProfileView struct {
	Account       domain.Account                `json:"account"`
	Student       *domain.StudentProfile       `json:"student,omitempty"`
	Teacher       *domain.TeacherProfile       `json:"teacher,omitempty"`
	Administrator *domain.AdministratorProfile `json:"administrator,omitempty"`
}

type ProfileUpdateInput struct {
	Name      *string
	Email     *string
	LastName  *string
	FirstName *string
	BirthDate *time.Time
	ClassName *string
	City      *string
	Subject   *string
	Function  *string
}

// ProfileService reads and updates the caller's own account and role
// profile. Role dispatch goes through a single loader table instead of
// conditionals scattered over call sites.
type ProfileService struct {
	accounts       ports.AccountRepository
	students       ports.StudentRepository
	teachers       ports.TeacherRepository
	administrators ports.AdministratorRepository
	storage        ports.ObjectStorage
	processor      media.Processor
	bucket         string
	maxPhotoBytes  int64

	loaders map[domain.Role]func(context.Context, *ProfileView, uuid.UUID) error
}

func NewProfileService(
	accounts ports.AccountRepository,
	students ports.StudentRepository,
	teachers ports.TeacherRepository,
	administrators ports.AdministratorRepository,
	storage ports.ObjectStorage,
	processor media.Processor,
	bucket string,
	maxPhotoBytes int64,
) *ProfileService {
	s := &ProfileService{
		accounts:       accounts,
		students:       students,
		teachers:       teachers,
		administrators: administrators,
		storage:        storage,
		processor:      processor,
		bucket:         bucket,
		maxPhotoBytes:  maxPhotoBytes,
	}
	s.loaders = map[domain.Role]func(context.Context, *ProfileView, uuid.UUID) error{
		domain.RoleStudent:       s.loadStudent,
		domain.RoleTeacher:       s.loadTeacher,
		domain.RoleAdministrator: s.loadAdministrator,
	}
	return s
}

func (s *ProfileService) GetProfile(ctx context.Context, account *domain.Account) (*ProfileView, error) {
	view := &ProfileView{Account: account.PublicView()}
	load, ok := s.loaders[account.Role]
	if !ok {
		return nil, fmt.Errorf("%w: no profile loader for role %q", ErrProfileNotFound, account.Role)
	}
	if err := load(ctx, view, account.ID); err != nil {
		if isNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return view, nil
}

// UpdateProfile applies account-level changes first, then the role profile,
// keeping the duplicated email/name columns in sync.
func (s *ProfileService) UpdateProfile(ctx context.Context, account *domain.Account, in ProfileUpdateInput) (*ProfileView, error) {
	if in.Email != nil {
		normalized := normalizeEmail(*in.Email)
		if normalized == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
		in.Email = &normalized
	}

	updated, err := s.accounts.UpdateInfo(ctx, account.ID, in.Name, in.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	switch account.Role {
	case domain.RoleStudent:
		profile, err := s.students.FindByAccountID(ctx, account.ID)
		if err == nil {
			_, err = s.students.Update(ctx, profile.ID, ports.StudentUpdate{
				LastName:  in.LastName,
				FirstName: in.FirstName,
				BirthDate: in.BirthDate,
				ClassName: in.ClassName,
				City:      in.City,
				Email:     in.Email,
			})
		}
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	case domain.RoleTeacher:
		profile, err := s.teachers.FindByAccountID(ctx, account.ID)
		if err == nil {
			_, err = s.teachers.Update(ctx, profile.ID, ports.TeacherUpdate{
				LastName:  in.LastName,
				FirstName: in.FirstName,
				BirthDate: in.BirthDate,
				Subject:   in.Subject,
				Email:     in.Email,
			})
		}
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	case domain.RoleAdministrator:
		profile, err := s.administrators.FindByAccountID(ctx, account.ID)
		if err == nil {
			_, err = s.administrators.Update(ctx, profile.ID, ports.AdministratorUpdate{
				LastName:  in.LastName,
				FirstName: in.FirstName,
				BirthDate: in.BirthDate,
				Function:  in.Function,
				Email:     in.Email,
			})
		}
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	return s.GetProfile(ctx, updated)
}

// UploadPhoto normalizes the uploaded image, stores it and records the public
// URL on the account.
func (s *ProfileService) UploadPhoto(ctx context.Context, account *domain.Account, upload media.Upload) (string, error) {
	if s.maxPhotoBytes > 0 && upload.Size > s.maxPhotoBytes {
		return "", fmt.Errorf("%w: photo exceeds size limit (%d bytes)", ErrValidation, s.maxPhotoBytes)
	}

	reader, size, contentType, err := prepareImageForUpload(ctx, s.processor, upload, media.DefaultMaxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("profile/%s%s", account.ID, ext)

	url, err := s.storage.Upload(ctx, s.bucket, objectName, contentType, reader, size)
	if err != nil {
		return "", err
	}
	if err := s.accounts.UpdatePhotoURL(ctx, account.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ProfileService) loadStudent(ctx context.Context, view *ProfileView, accountID uuid.UUID) error {
	profile, err := s.students.FindByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	view.Student = profile
	return nil
}

func (s *ProfileService) loadTeacher(ctx context.Context, view *ProfileView, accountID uuid.UUID) error {
	profile, err := s.teachers.FindByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	view.Teacher = profile
	return nil
}

func (s *ProfileService) loadAdministrator(ctx context.Context, view *ProfileView, accountID uuid.UUID) error {
	profile, err := s.administrators.FindByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	view.Administrator = profile
	return nil
}

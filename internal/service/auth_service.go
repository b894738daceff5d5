package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
	"github.com/ecolehub/ecole-api/internal/util"
)

// AuthService orchestrates registration with email verification, login and
// session-token verification. Role-specific profile records are created
// through an explicit dispatch table rather than as a hidden side effect of
// the account write.
type AuthService struct {
	accounts       ports.AccountRepository
	students       ports.StudentRepository
	teachers       ports.TeacherRepository
	administrators ports.AdministratorRepository
	codes          *VerificationService
	codeMailer     VerificationCodeSender
	jwt            *util.JWTManager

	profileCreators map[domain.Role]func(context.Context, *domain.Account) error
}

func NewAuthService(
	accounts ports.AccountRepository,
	students ports.StudentRepository,
	teachers ports.TeacherRepository,
	administrators ports.AdministratorRepository,
	codes *VerificationService,
	codeMailer VerificationCodeSender,
	jwt *util.JWTManager,
) *AuthService {
	s := &AuthService{
		accounts:       accounts,
		students:       students,
		teachers:       teachers,
		administrators: administrators,
		codes:          codes,
		codeMailer:     codeMailer,
		jwt:            jwt,
	}
	s.profileCreators = map[domain.Role]func(context.Context, *domain.Account) error{
		domain.RoleStudent:       s.createDefaultStudentProfile,
		domain.RoleTeacher:       s.createDefaultTeacherProfile,
		domain.RoleAdministrator: s.createDefaultAdministratorProfile,
	}
	return s
}

type AuthResult struct {
	Account          domain.Account
	Token            string
	TokenExpiresAt   string
	RefreshToken     string
	NotificationSent bool
}

type RegisterInput struct {
	Email    string
	Code     string
	Name     string
	Password string
	Role     domain.Role
}

// RequestVerificationCode issues a fresh code for an unregistered email and
// mails it out. A failed send is surfaced as ErrMailDeliveryFailed but the
// stored code stays valid; the caller may retry the send.
func (s *AuthService) RequestVerificationCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !isNotFound(err) {
		return err
	}

	code, err := s.codes.IssueCode(ctx, email)
	if err != nil {
		return err
	}
	if err := s.codeMailer.SendVerificationCode(ctx, email, code); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDeliveryFailed, err)
	}
	return nil
}

// Register completes self-registration: a valid, unexpired code is required,
// the account insert relies on the unique email index as the race-breaker,
// and the code record is deleted only once the account exists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, in.Role)
	}

	if err := s.CheckVerificationCode(ctx, email, in.Code); err != nil {
		return nil, err
	}

	account, err := s.createAccount(ctx, email, in.Name, in.Password, role)
	if err != nil {
		return nil, err
	}

	// Single use: the code dies with the completed registration. If the
	// delete fails the record still expires on its own.
	_ = s.codes.Consume(ctx, email)

	return s.issueTokens(ctx, account)
}

// CheckVerificationCode reports whether the submitted code currently matches
// the one on file for the email. It consumes nothing, so the signup flow can
// call it ahead of the actual registration submit.
func (s *AuthService) CheckVerificationCode(ctx context.Context, email, code string) error {
	if err := s.codes.VerifyCode(ctx, normalizeEmail(email), code); err != nil {
		switch err {
		case ErrCodeNotFound, ErrCodeExpired, ErrCodeMismatch:
			return ErrInvalidOrExpiredCode
		default:
			return err
		}
	}
	return nil
}

// RegisterByAdmin creates an account without code verification. This is the
// explicit administrator-bootstrap entry point; it is only reachable through
// administrator-authorized callers and never via a client-supplied flag.
// Every account leaves here with its role profile already created; callers
// holding richer profile data update that profile afterwards.
func (s *AuthService) RegisterByAdmin(ctx context.Context, email, name, password string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}
	return s.createAccount(ctx, normalizeEmail(email), name, password, role)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	match, err := util.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	}
	if !match {
		return nil, ErrBadPassword
	}

	return s.issueTokens(ctx, account)
}

// Authenticate verifies a session token and re-fetches the account so that
// tokens for deleted accounts are rejected immediately, not merely at natural
// expiry. It mutates nothing and is safe to call concurrently.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// Refresh exchanges a refresh token for a new session token. The token must
// both verify against the refresh secret and match the one persisted on the
// account, so logout invalidates it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if account.RefreshToken == nil || *account.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	token, expiresAt, err := s.jwt.Generate(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Account:        account.PublicView(),
		Token:          token,
		TokenExpiresAt: expiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		RefreshToken:   refreshToken,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, accountID uuid.UUID) error {
	return s.accounts.SetRefreshToken(ctx, accountID, nil)
}

func (s *AuthService) ChangePassword(ctx context.Context, accountID uuid.UUID, current, newPassword string) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if isNotFound(err) {
			return ErrAccountNotFound
		}
		return err
	}

	match, err := util.VerifyPassword(current, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	}
	if !match {
		return ErrBadPassword
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, accountID, hash)
}

func (s *AuthService) createAccount(ctx context.Context, email, name, password string, role domain.Role) (*domain.Account, error) {
	account, err := s.createAccountOnly(ctx, email, name, password, role)
	if err != nil {
		return nil, err
	}
	if create, ok := s.profileCreators[role]; ok {
		if err := create(ctx, account); err != nil {
			return nil, err
		}
	}
	return account, nil
}

func (s *AuthService) createAccountOnly(ctx context.Context, email, name, password string, role domain.Role) (*domain.Account, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Create(ctx, email, strings.TrimSpace(name), hash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return account, nil
}

func (s *AuthService) issueTokens(ctx context.Context, account *domain.Account) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.jwt.GenerateRefresh(account.ID)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.SetRefreshToken(ctx, account.ID, &refresh); err != nil {
		return nil, err
	}
	return &AuthResult{
		Account:        account.PublicView(),
		Token:          token,
		TokenExpiresAt: expiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		RefreshToken:   refresh,
	}, nil
}

func (s *AuthService) createDefaultStudentProfile(ctx context.Context, account *domain.Account) error {
	first, last := splitName(account.Name)
	_, err := s.students.Create(ctx, &domain.StudentProfile{
		AccountID: account.ID,
		LastName:  last,
		FirstName: first,
		ClassName: domain.DefaultClassName,
		Email:     account.Email,
	})
	return err
}

func (s *AuthService) createDefaultTeacherProfile(ctx context.Context, account *domain.Account) error {
	first, last := splitName(account.Name)
	_, err := s.teachers.Create(ctx, &domain.TeacherProfile{
		AccountID: account.ID,
		LastName:  last,
		FirstName: first,
		Email:     account.Email,
	})
	return err
}

func (s *AuthService) createDefaultAdministratorProfile(ctx context.Context, account *domain.Account) error {
	first, last := splitName(account.Name)
	_, err := s.administrators.Create(ctx, &domain.AdministratorProfile{
		AccountID: account.ID,
		LastName:  last,
		FirstName: first,
		Function:  "Administrator",
		Email:     account.Email,
	})
	return err
}

// splitName treats display names as "first last"; everything past the first
// word becomes the last name.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecolehub/ecole-api/internal/repository/ports"
	"github.com/ecolehub/ecole-api/internal/util"
)

// PasswordResetService manages the single-use opaque tokens backing the
// forgot-password flow. Issuing a token for an email invalidates any
// outstanding one for the same address.
type PasswordResetService struct {
	accounts     ports.AccountRepository
	tokens       ports.ResetTokenRepository
	mailer       PasswordResetSender
	frontendBase string
	ttl          time.Duration

	now func() time.Time
}

func NewPasswordResetService(
	accounts ports.AccountRepository,
	tokens ports.ResetTokenRepository,
	mailer PasswordResetSender,
	frontendBase string,
	ttl time.Duration,
) *PasswordResetService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PasswordResetService{
		accounts:     accounts,
		tokens:       tokens,
		mailer:       mailer,
		frontendBase: strings.TrimRight(frontendBase, "/"),
		ttl:          ttl,
		now:          time.Now,
	}
}

// RequestReset issues a token for an existing account and mails the reset
// link. A failed send leaves the stored token valid and is reported as
// ErrMailDeliveryFailed.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.accounts.FindByEmail(ctx, email); err != nil {
		if isNotFound(err) {
			return ErrAccountNotFound
		}
		return err
	}

	token, err := util.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := s.tokens.Replace(ctx, email, token, s.now().Add(s.ttl)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBase, token)
	if err := s.mailer.SendPasswordReset(ctx, email, link); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDeliveryFailed, err)
	}
	return nil
}

// ResetPassword consumes a token exactly once. The token record is only
// deleted after the password update succeeds, so a failed update can be
// retried with the same link.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenNotFound
	}

	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return ErrTokenNotFound
		}
		return err
	}
	if record.IsExpired(s.now()) {
		_ = s.tokens.DeleteByToken(ctx, token)
		return ErrTokenExpired
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.accounts.FindByEmail(ctx, record.Email); err != nil {
		if isNotFound(err) {
			return ErrAccountNotFound
		}
		return err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePasswordByEmail(ctx, record.Email, hash); err != nil {
		return err
	}

	return s.tokens.DeleteByToken(ctx, token)
}

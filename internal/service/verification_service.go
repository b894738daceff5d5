package service

import (
	"context"
	"strings"
	"time"

	"github.com/ecolehub/ecole-api/internal/repository/ports"
	"github.com/ecolehub/ecole-api/internal/util"
)

// VerificationService manages the short-lived numeric codes that gate
// self-registration. At most one live code exists per email; issuing a new
// one overwrites the previous record, last writer wins.
type VerificationService struct {
	codes ports.VerificationCodeRepository
	ttl   time.Duration

	now func() time.Time
}

func NewVerificationService(codes ports.VerificationCodeRepository, ttl time.Duration) *VerificationService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &VerificationService{codes: codes, ttl: ttl, now: time.Now}
}

// IssueCode generates and stores a fresh code for the email and returns it so
// the caller can dispatch it by mail.
func (s *VerificationService) IssueCode(ctx context.Context, email string) (string, error) {
	code, err := util.GenerateVerificationCode()
	if err != nil {
		return "", err
	}
	expiresAt := s.now().Add(s.ttl)
	if err := s.codes.Upsert(ctx, normalizeEmail(email), code, expiresAt); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyCode checks the submitted code against the stored record without
// consuming it; registration completion deletes the record via Consume so the
// check stays repeatable until then.
func (s *VerificationService) VerifyCode(ctx context.Context, email, submitted string) error {
	record, err := s.codes.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrCodeNotFound
		}
		return err
	}
	if record.IsExpired(s.now()) {
		// Hygiene only; the expiry check above is authoritative.
		_ = s.codes.DeleteByEmail(ctx, normalizeEmail(email))
		return ErrCodeExpired
	}
	if record.Code != strings.TrimSpace(submitted) {
		return ErrCodeMismatch
	}
	return nil
}

// Consume deletes the record for the email, enforcing single use.
func (s *VerificationService) Consume(ctx context.Context, email string) error {
	return s.codes.DeleteByEmail(ctx, normalizeEmail(email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

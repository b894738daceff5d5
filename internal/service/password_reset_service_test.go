package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ecolehub/ecole-api/internal/util"
)

type resetFixture struct {
	accounts *fakeAccountRepo
	tokens   *fakeTokenRepo
	mailer   *fakeMailer
	svc      *PasswordResetService
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	f := &resetFixture{
		accounts: newFakeAccountRepo(),
		tokens:   newFakeTokenRepo(),
		mailer:   newFakeMailer(),
	}
	f.svc = NewPasswordResetService(f.accounts, f.tokens, f.mailer, "https://app.example.com/", time.Hour)

	hash, err := util.HashPassword("old-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := f.accounts.Create(context.Background(), "anna@example.com", "Anna Durand", hash, "student"); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return f
}

func (f *resetFixture) mailedToken(t *testing.T, email string) string {
	t.Helper()
	link, ok := f.mailer.links[email]
	if !ok {
		t.Fatalf("expected a reset link mailed to %s", email)
	}
	const marker = "/reset-password?token="
	idx := strings.Index(link, marker)
	if idx < 0 {
		t.Fatalf("unexpected link format %q", link)
	}
	return link[idx+len(marker):]
}

func TestRequestResetUnknownEmail(t *testing.T) {
	f := newResetFixture(t)
	err := f.svc.RequestReset(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestResetPasswordRoundTrip(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestReset(ctx, "anna@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	token := f.mailedToken(t, "anna@example.com")
	if !strings.HasPrefix(f.mailer.links["anna@example.com"], "https://app.example.com/reset-password?token=") {
		t.Fatalf("unexpected link %q", f.mailer.links["anna@example.com"])
	}

	if err := f.svc.ResetPassword(ctx, token, "new-password"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	account := f.accounts.byEmail("anna@example.com")
	if !util.CheckPassword("new-password", account.PasswordHash) {
		t.Fatalf("expected the new password to be stored")
	}
	if util.CheckPassword("old-password", account.PasswordHash) {
		t.Fatalf("expected the old password to stop working")
	}

	// Single use: a second attempt with the same link fails.
	if err := f.svc.ResetPassword(ctx, token, "another-password"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound on reuse, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestReset(ctx, "anna@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	token := f.mailedToken(t, "anna@example.com")

	f.svc.now = func() time.Time { return time.Now().Add(time.Hour + time.Second) }

	if err := f.svc.ResetPassword(ctx, token, "new-password"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, err := f.tokens.FindByToken(ctx, token); err == nil {
		t.Fatalf("expected expired token record to be cleaned up")
	}
}

func TestReissueInvalidatesPriorToken(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestReset(ctx, "anna@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	first := f.mailedToken(t, "anna@example.com")

	if err := f.svc.RequestReset(ctx, "anna@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	second := f.mailedToken(t, "anna@example.com")
	if first == second {
		t.Fatalf("expected a fresh token on re-request")
	}

	if err := f.svc.ResetPassword(ctx, first, "new-password"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected the superseded token to be rejected, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, second, "new-password"); err != nil {
		t.Fatalf("expected the latest token to work, got %v", err)
	}
}

func TestResetPasswordKeepsTokenOnUpdateFailure(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestReset(ctx, "anna@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	token := f.mailedToken(t, "anna@example.com")

	f.accounts.updatePasswordByEmailErr = errors.New("db down")
	if err := f.svc.ResetPassword(ctx, token, "new-password"); err == nil {
		t.Fatalf("expected error when the password update fails")
	}
	if _, err := f.tokens.FindByToken(ctx, token); err != nil {
		t.Fatalf("expected token to survive the failed update: %v", err)
	}

	// Same link works once the store recovers.
	f.accounts.updatePasswordByEmailErr = nil
	if err := f.svc.ResetPassword(ctx, token, "new-password"); err != nil {
		t.Fatalf("expected retry with the same link to succeed, got %v", err)
	}
}

func TestResetPasswordValidation(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.ResetPassword(ctx, "", "new-password"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for empty token, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, "unknown-token", "new-password"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for unknown token, got %v", err)
	}

	if err := f.svc.RequestReset(ctx, "anna@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	token := f.mailedToken(t, "anna@example.com")
	if err := f.svc.ResetPassword(ctx, token, "short"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for weak password, got %v", err)
	}
	// A rejected password does not burn the token.
	if err := f.svc.ResetPassword(ctx, token, "new-password"); err != nil {
		t.Fatalf("expected token to remain usable, got %v", err)
	}
}

func TestRequestResetMailFailureKeepsToken(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.sendErr = errors.New("smtp down")

	err := f.svc.RequestReset(context.Background(), "anna@example.com")
	if !errors.Is(err, ErrMailDeliveryFailed) {
		t.Fatalf("expected ErrMailDeliveryFailed, got %v", err)
	}
	if len(f.tokens.tokens) != 1 {
		t.Fatalf("expected the stored token to survive the failed send")
	}
}

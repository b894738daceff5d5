package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerifyCode(t *testing.T) {
	repo := newFakeCodeRepo()
	svc := NewVerificationService(repo, 10*time.Minute)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("IssueCode returned error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected six digit code, got %q", code)
	}

	if err := svc.VerifyCode(ctx, "anna@example.com", code); err != nil {
		t.Fatalf("VerifyCode returned error: %v", err)
	}
	// Verification does not consume; a retried submit still passes.
	if err := svc.VerifyCode(ctx, "anna@example.com", code); err != nil {
		t.Fatalf("expected repeated verification to pass, got %v", err)
	}
	// Whitespace around the submitted code is tolerated.
	if err := svc.VerifyCode(ctx, "anna@example.com", "  "+code+" "); err != nil {
		t.Fatalf("expected trimmed code to verify, got %v", err)
	}

	if err := svc.Consume(ctx, "anna@example.com"); err != nil {
		t.Fatalf("Consume returned error: %v", err)
	}
	if err := svc.VerifyCode(ctx, "anna@example.com", code); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound after consumption, got %v", err)
	}
}

func TestVerifyCodeMismatch(t *testing.T) {
	repo := newFakeCodeRepo()
	svc := NewVerificationService(repo, 10*time.Minute)
	ctx := context.Background()

	if _, err := svc.IssueCode(ctx, "anna@example.com"); err != nil {
		t.Fatalf("IssueCode returned error: %v", err)
	}
	if err := svc.VerifyCode(ctx, "anna@example.com", "000000"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
}

func TestReissueInvalidatesPriorCode(t *testing.T) {
	repo := newFakeCodeRepo()
	svc := NewVerificationService(repo, 10*time.Minute)
	ctx := context.Background()

	first, err := svc.IssueCode(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("IssueCode returned error: %v", err)
	}
	var second string
	for {
		second, err = svc.IssueCode(ctx, "anna@example.com")
		if err != nil {
			t.Fatalf("IssueCode returned error: %v", err)
		}
		if second != first {
			break
		}
	}

	if err := svc.VerifyCode(ctx, "anna@example.com", first); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected the overwritten code to be rejected, got %v", err)
	}
	if err := svc.VerifyCode(ctx, "anna@example.com", second); err != nil {
		t.Fatalf("expected the latest code to verify, got %v", err)
	}
}

func TestVerifyCodeExpired(t *testing.T) {
	repo := newFakeCodeRepo()
	svc := NewVerificationService(repo, 10*time.Minute)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("IssueCode returned error: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(10*time.Minute + time.Second) }

	if err := svc.VerifyCode(ctx, "anna@example.com", code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "anna@example.com"); err == nil {
		t.Fatalf("expected expired record to be cleaned up")
	}
}

func TestVerifyCodeUnknownEmail(t *testing.T) {
	svc := NewVerificationService(newFakeCodeRepo(), 10*time.Minute)
	if err := svc.VerifyCode(context.Background(), "nobody@example.com", "123456"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

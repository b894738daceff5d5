package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
)

func newTeacherServiceForTest() (*TeacherService, *authFixture) {
	auth := newAuthFixture()
	return NewTeacherService(auth.teachers, auth.accounts, auth.svc), auth
}

func TestCreateTeacher(t *testing.T) {
	svc, auth := newTeacherServiceForTest()
	ctx := context.Background()

	profile, err := svc.Create(ctx, CreateTeacherInput{
		Email:     "claire@example.com",
		Password:  "s3cret-pass",
		LastName:  "Moreau",
		FirstName: "Claire",
		Subject:   "Mathematics",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if profile.Subject != "Mathematics" {
		t.Fatalf("expected subject Mathematics, got %q", profile.Subject)
	}

	account := auth.accounts.byEmail("claire@example.com")
	if account == nil || account.Role != domain.RoleTeacher {
		t.Fatalf("expected a teacher account to back the profile")
	}
}

func TestCreateTeacherRequiresSubject(t *testing.T) {
	svc, _ := newTeacherServiceForTest()
	_, err := svc.Create(context.Background(), CreateTeacherInput{
		Email:     "claire@example.com",
		Password:  "s3cret-pass",
		LastName:  "Moreau",
		FirstName: "Claire",
		Subject:   "   ",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing subject, got %v", err)
	}
}

func TestUpdateTeacherSyncsAccount(t *testing.T) {
	svc, auth := newTeacherServiceForTest()
	ctx := context.Background()

	profile, err := svc.Create(ctx, CreateTeacherInput{
		Email:     "claire@example.com",
		Password:  "s3cret-pass",
		LastName:  "Moreau",
		FirstName: "Claire",
		Subject:   "Mathematics",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	subject := "Physics"
	email := "claire.moreau@example.com"
	updated, err := svc.Update(ctx, profile.ID, ports.TeacherUpdate{
		Subject: &subject,
		Email:   &email,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Subject != "Physics" {
		t.Fatalf("expected subject Physics, got %q", updated.Subject)
	}
	if auth.accounts.byEmail("claire.moreau@example.com") == nil {
		t.Fatalf("expected the account email to follow the profile")
	}
}

func TestUpdateTeacherEmailConflictLeavesProfileUntouched(t *testing.T) {
	svc, auth := newTeacherServiceForTest()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateTeacherInput{
		Email:     "claire@example.com",
		Password:  "s3cret-pass",
		LastName:  "Moreau",
		FirstName: "Claire",
		Subject:   "Mathematics",
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	other, err := svc.Create(ctx, CreateTeacherInput{
		Email:     "paul@example.com",
		Password:  "s3cret-pass",
		LastName:  "Roche",
		FirstName: "Paul",
		Subject:   "History",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	taken := "claire@example.com"
	if _, err := svc.Update(ctx, other.ID, ports.TeacherUpdate{Email: &taken}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	profile, err := svc.Get(ctx, other.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if profile.Email != "paul@example.com" {
		t.Fatalf("expected profile email unchanged, got %q", profile.Email)
	}
	if auth.accounts.byEmail("paul@example.com") == nil {
		t.Fatalf("expected account email unchanged")
	}
}

func TestDeleteTeacherRemovesAccount(t *testing.T) {
	svc, auth := newTeacherServiceForTest()
	ctx := context.Background()

	profile, err := svc.Create(ctx, CreateTeacherInput{
		Email:     "claire@example.com",
		Password:  "s3cret-pass",
		LastName:  "Moreau",
		FirstName: "Claire",
		Subject:   "Mathematics",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(ctx, profile.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, profile.ID); !errors.Is(err, ErrTeacherNotFound) {
		t.Fatalf("expected ErrTeacherNotFound after delete, got %v", err)
	}
	if auth.accounts.byEmail("claire@example.com") != nil {
		t.Fatalf("expected the linked account to be removed")
	}
}

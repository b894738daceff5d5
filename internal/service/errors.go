package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrAccountNotFound        = errors.New("account not found")
	ErrBadPassword            = errors.New("incorrect password")
	ErrCorruptCredential      = errors.New("stored credential is corrupt")
	ErrValidation             = errors.New("validation failed")

	ErrInvalidOrExpiredCode = errors.New("verification code invalid or expired")
	ErrCodeNotFound         = errors.New("no verification code for this email")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrCodeMismatch         = errors.New("verification code mismatch")

	ErrTokenNotFound = errors.New("reset token not found")
	ErrTokenExpired  = errors.New("reset token expired")

	ErrInvalidToken = errors.New("invalid or expired session token")

	ErrProfileNotFound = errors.New("profile not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")

	ErrMailDeliveryFailed = errors.New("mail delivery failed")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

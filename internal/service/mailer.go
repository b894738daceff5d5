package service

import "context"

// VerificationCodeSender delivers registration codes out of band. Delivery is
// fire-and-forget from the core's perspective: a failed send never unwinds
// state that was already persisted.
type VerificationCodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// PasswordResetSender delivers the reset link for a forgot-password request.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

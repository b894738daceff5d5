package http

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// SendCodeRequest asks for a registration verification code.
type SendCodeRequest struct {
	Email string `json:"email" example:"student@example.com"`
}

// VerifyCodeRequest pre-checks a mailed code without consuming it.
type VerifyCodeRequest struct {
	Email string `json:"email" example:"student@example.com"`
	Code  string `json:"code" example:"482193"`
}

// RegisterRequest completes self-registration with the mailed code.
type RegisterRequest struct {
	Email    string `json:"email" example:"student@example.com"`
	Code     string `json:"code" example:"482193"`
	Name     string `json:"name" example:"Alice Martin"`
	Password string `json:"password" example:"StrongPass!23"`
	Role     string `json:"role" example:"student"`
}

// AdminRegisterRequest creates an account without code verification; the
// route is restricted to administrators.
type AdminRegisterRequest struct {
	Email    string `json:"email" example:"teacher@example.com"`
	Name     string `json:"name" example:"Marc Dupont"`
	Password string `json:"password" example:"StrongPass!23"`
	Role     string `json:"role" example:"teacher"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"student@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// RefreshRequest exchanges a refresh token for a new session token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"student@example.com"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password" example:"NewPass!45"`
}

// ChangePasswordRequest captures the payload for password updates.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"OldPass!23"`
	NewPassword     string `json:"new_password" example:"NewPass!45"`
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/service"
	"github.com/ecolehub/ecole-api/internal/util"
)

type AuthHandler struct {
	auth   *service.AuthService
	resets *service.PasswordResetService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, resets *service.PasswordResetService) {
	handler := &AuthHandler{auth: auth, resets: resets}

	group := e.Group("/api/v1/auth")
	group.POST("/send-verification-code", handler.sendVerificationCode)
	group.POST("/verify-code", handler.verifyCode)
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/refresh-token", handler.refresh)
	group.POST("/forgot-password", handler.forgotPassword)
	group.POST("/reset-password", handler.resetPassword)

	protected := e.Group("/api/v1/auth", RequireAuth(auth))
	protected.POST("/logout", handler.logout)
	protected.POST("/change-password", handler.changePassword)
	protected.POST("/register-by-admin", handler.registerByAdmin, RequireAdmin())
}

func (h *AuthHandler) sendVerificationCode(c echo.Context) error {
	var req SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.auth.RequestVerificationCode(c.Request().Context(), req.Email); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("verification code sent"))
}

// verifyCode lets the signup page pre-check a code before submitting the
// full registration. The check consumes nothing.
func (h *AuthHandler) verifyCode(c echo.Context) error {
	var req VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.auth.CheckVerificationCode(c.Request().Context(), req.Email, req.Code); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("verification code valid"))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Code:     req.Code,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusCreated, authPayload(result))
}

func (h *AuthHandler) registerByAdmin(c echo.Context) error {
	var req AdminRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	account, err := h.auth.RegisterByAdmin(c.Request().Context(), req.Email, req.Name, req.Password, domain.Role(req.Role))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("account", account.PublicView()))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, authPayload(result))
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, authPayload(result))
}

func (h *AuthHandler) logout(c echo.Context) error {
	account, ok := CurrentAccount(c)
	if !ok || account == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.Logout(c.Request().Context(), account.ID); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("logged out"))
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	account, ok := CurrentAccount(c)
	if !ok || account == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.auth.ChangePassword(c.Request().Context(), account.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("password updated"))
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.resets.RequestReset(c.Request().Context(), req.Email); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("reset link sent"))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.resets.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("password reset"))
}

func authPayload(result *service.AuthResult) util.Envelope {
	return util.Envelope{
		"account":       result.Account,
		"token":         result.Token,
		"expires_at":    result.TokenExpiresAt,
		"refresh_token": result.RefreshToken,
	}
}

// authError translates service error kinds into transport responses; this is
// the only place that mapping lives.
func authError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		return c.JSON(http.StatusConflict, util.Error("email already used"))
	case errors.Is(err, service.ErrInvalidOrExpiredCode):
		return c.JSON(http.StatusBadRequest, util.Error("verification code invalid or expired"))
	case errors.Is(err, service.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, util.Error("account not found"))
	case errors.Is(err, service.ErrBadPassword):
		return c.JSON(http.StatusUnauthorized, util.Error("incorrect password"))
	case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrTokenExpired):
		return c.JSON(http.StatusBadRequest, util.Error("reset link invalid or expired"))
	case errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired token"))
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrMailDeliveryFailed):
		return c.JSON(http.StatusBadGateway, util.Error("unable to send email"))
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrTeacherNotFound), errors.Is(err, service.ErrProfileNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

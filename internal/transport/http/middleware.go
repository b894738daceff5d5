package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecolehub/ecole-api/internal/domain"
	"github.com/ecolehub/ecole-api/internal/service"
	"github.com/ecolehub/ecole-api/internal/util"
)

const (
	contextAccountKey = "auth.account"
	contextTokenKey   = "auth.token"
)

// RequireAuth authenticates the bearer token on every request. The service
// re-checks the account against the store, so tokens for deleted accounts
// are refused here regardless of their expiry.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			token := strings.TrimSpace(parts[1])
			account, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired token"))
			}
			c.Set(contextAccountKey, account)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireRole gates a route group to one or more roles. The role comes from
// the freshly loaded account, never from request data.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := CurrentAccount(c)
			if !ok || account == nil {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			if _, ok := allowed[account.Role]; !ok {
				return c.JSON(http.StatusForbidden, util.Error("insufficient privileges"))
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdministrator)
}

func CurrentAccount(c echo.Context) (*domain.Account, bool) {
	account, ok := c.Get(contextAccountKey).(*domain.Account)
	return account, ok
}

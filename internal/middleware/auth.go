package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gestorpi/gestor-api/internal/handler"
	"github.com/gestorpi/gestor-api/internal/model"
)

const ContextAccount = "account"

// Authenticator resolves a bearer token to a live, active account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Account, error)
}

type AuthMiddleware struct {
	authSvc Authenticator
}

func NewAuthMiddleware(authSvc Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate validates the session token and stores the rehydrated
// account in the request context. The account is fetched fresh on every
// request, so a deactivation takes effect immediately.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		account, err := m.authSvc.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			status := http.StatusUnauthorized
			if sc, ok := err.(interface{ StatusCode() int }); ok {
				status = sc.StatusCode()
			}
			c.JSON(status, handler.NewErrorResponse(err.Error()))
			c.Abort()
			return
		}

		c.Set(ContextAccount, account)
		c.Next()
	}
}

// RequireAdministrator gates a route on the administrator profile.
func (m *AuthMiddleware) RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := AccountFromContext(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
			c.Abort()
			return
		}

		if !account.IsAdministrator() {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("administrator profile required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// AccountFromContext returns the authenticated account, or nil.
func AccountFromContext(c *gin.Context) *model.Account {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return nil
	}
	account, ok := v.(*model.Account)
	if !ok {
		return nil
	}
	return account
}

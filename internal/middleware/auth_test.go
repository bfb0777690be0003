package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gestorpi/gestor-api/internal/model"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
)

type fakeAuthenticator struct {
	token   string
	account *model.Account
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*model.Account, error) {
	if token != f.token {
		return nil, apperrors.Unauthorized(nil)
	}
	return f.account, nil
}

func protectedRouter(m *AuthMiddleware, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	group := r.Group("/", m.Authenticate())
	if admin {
		group.Use(m.RequireAdministrator())
	}
	group.GET("/resource", func(c *gin.Context) {
		account := AccountFromContext(c)
		c.JSON(http.StatusOK, gin.H{"login": account.Login})
	})
	return r
}

func attendant() *model.Account {
	return &model.Account{
		Base:      model.Base{ID: uuid.New()},
		Login:     "maria",
		ProfileID: model.ProfileAttendant,
		Active:    true,
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthenticator{token: "good"})
	r := protectedRouter(m, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthenticator{token: "good"})
	r := protectedRouter(m, false)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Token good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthenticator{token: "good"})
	r := protectedRouter(m, false)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSetsAccount(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthenticator{token: "good", account: attendant()})
	r := protectedRouter(m, false)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "maria")
}

func TestRequireAdministratorRejectsAttendant(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthenticator{token: "good", account: attendant()})
	r := protectedRouter(m, true)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdministratorAllowsAdmin(t *testing.T) {
	admin := attendant()
	admin.ProfileID = model.ProfileAdministrator
	m := NewAuthMiddleware(&fakeAuthenticator{token: "good", account: admin})
	r := protectedRouter(m, true)

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

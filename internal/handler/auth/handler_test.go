package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpi/gestor-api/internal/model"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
)

type fakeAuthService struct {
	login    string
	password string
	revoked  []string
}

func (s *fakeAuthService) Login(_ context.Context, login, password string) (*model.TokenResponse, error) {
	if login != s.login {
		return nil, apperrors.NotFound("account", nil)
	}
	if password != s.password {
		return nil, apperrors.InvalidCredentials()
	}
	return &model.TokenResponse{AccessToken: "signed-token", ExpiresIn: 1800}, nil
}

func (s *fakeAuthService) Logout(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func setupRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(svc)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterProtectedRoutes(api)
	return r
}

func TestLoginSuccess(t *testing.T) {
	r := setupRouter(&fakeAuthService{login: "maria", password: "password123"})

	body := `{"login":"maria","senha":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(&fakeAuthService{login: "maria", password: "password123"})

	body := `{"login":"maria","senha":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownAccount(t *testing.T) {
	r := setupRouter(&fakeAuthService{login: "maria", password: "password123"})

	body := `{"login":"ghost","senha":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	r := setupRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"login":"maria"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	svc := &fakeAuthService{}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"some-token"}, svc.revoked)
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gestorpi/gestor-api/internal/handler"
	"github.com/gestorpi/gestor-api/internal/middleware"
	"github.com/gestorpi/gestor-api/internal/model"
)

type AuthServicer interface {
	Login(ctx context.Context, login, password string) (*model.TokenResponse, error)
	Logout(ctx context.Context, token string) error
}

type Handler struct {
	svc AuthServicer
}

func NewHandler(svc AuthServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes attaches the routes that require a live session.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if sc, ok := err.(interface{ StatusCode() int }); ok {
			status = sc.StatusCode()
		}
		c.JSON(status, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("logged out"))
}

// Me returns the caller's own account, as rehydrated by the auth middleware.
func (h *Handler) Me(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(account))
}

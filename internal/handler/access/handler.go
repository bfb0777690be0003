package access

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/handler"
	"github.com/gestorpi/gestor-api/internal/middleware"
	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/service/access"
)

type Handler struct {
	svc access.AccessServicer
}

func NewHandler(svc access.AccessServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	acessos := r.Group("/acessos")
	{
		acessos.GET("", h.ListAccounts)
		acessos.POST("", h.CreateAccount)
		acessos.GET("/:id", h.GetAccount)
		acessos.PATCH("/:id/situacao", h.SetActive)
		acessos.DELETE("/:id", h.DeleteAccount)
	}
	r.GET("/perfis", h.ListProfiles)
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor := middleware.AccountFromContext(c)
	account, err := h.svc.CreateAccount(c.Request.Context(), actor.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(account))
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	account, err := h.svc.GetAccount(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(account))
}

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(accounts))
}

// SetActive toggles the account's active flag to the requested value.
func (h *Handler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	var req model.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor := middleware.AccountFromContext(c)
	if err := h.svc.SetActive(c.Request.Context(), actor.ID, id, *req.Active); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "ativo": *req.Active}))
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	actor := middleware.AccountFromContext(c)
	if err := h.svc.DeleteAccount(c.Request.Context(), actor.ID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id}))
}

func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.svc.ListProfiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/handler"
	"github.com/gestorpi/gestor-api/internal/middleware"
	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/service/catalog"
)

type Handler struct {
	svc catalog.CatalogServicer
}

func NewHandler(svc catalog.CatalogServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	servicos := r.Group("/servicos")
	{
		servicos.GET("", h.ListServices)
		servicos.POST("", h.CreateService)
		servicos.DELETE("/:id", h.DeleteService)
	}
	r.GET("/metodos-pagamento", h.ListPaymentMethods)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor := middleware.AccountFromContext(c)
	service, err := h.svc.CreateService(c.Request.Context(), actor.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(service))
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	actor := middleware.AccountFromContext(c)
	if err := h.svc.DeleteService(c.Request.Context(), actor.ID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id}))
}

func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.svc.ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(methods))
}

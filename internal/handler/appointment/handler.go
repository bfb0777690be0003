package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/handler"
	"github.com/gestorpi/gestor-api/internal/middleware"
	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/service/appointment"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc appointment.AppointmentServicer
}

func NewHandler(svc appointment.AppointmentServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	atendimentos := r.Group("/atendimentos")
	{
		atendimentos.GET("", h.ListAppointments)
		atendimentos.POST("", h.RecordAppointment)
		atendimentos.GET("/:id", h.GetAppointment)
	}
}

// RegisterReportRoutes attaches the administrator-only report surface.
func (h *Handler) RegisterReportRoutes(r *gin.RouterGroup) {
	r.GET("/relatorios/atendimentos", h.DailyReport)
}

// RecordAppointment records a visit for the authenticated account.
func (h *Handler) RecordAppointment(c *gin.Context) {
	var req model.RecordAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor := middleware.AccountFromContext(c)
	recorded, err := h.svc.Record(c.Request.Context(), actor.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(recorded))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var filters model.AppointmentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointments, err := h.svc.List(c.Request.Context(), &filters)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// DailyReport aggregates appointments per day across the requested range,
// defaulting to the last 30 days.
func (h *Handler) DailyReport(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("de"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return
		}
		from = parsed
	}
	if v := c.Query("ate"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date"))
			return
		}
		to = parsed
	}

	rows, err := h.svc.DailyReport(c.Request.Context(), from, to)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}

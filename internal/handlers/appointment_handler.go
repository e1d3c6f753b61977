package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	appointmentuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list       *appointmentuc.ListAppointments
	create     *appointmentuc.CreateAppointment
	reschedule *appointmentuc.RescheduleAppointment
	status     *appointmentuc.ChangeStatus
	calendar   *appointmentuc.GetCalendar
	today      *appointmentuc.TodaySummary
}

func NewAppointmentHandler(
	list *appointmentuc.ListAppointments,
	create *appointmentuc.CreateAppointment,
	reschedule *appointmentuc.RescheduleAppointment,
	status *appointmentuc.ChangeStatus,
	calendar *appointmentuc.GetCalendar,
	today *appointmentuc.TodaySummary,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:       list,
		create:     create,
		reschedule: reschedule,
		status:     status,
		calendar:   calendar,
		today:      today,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Status is accepted for compatibility with older clients and ignored.
type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	BarberID  uint   `json:"barber_id"`
	StartTime string `json:"start_time" binding:"required"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}

type RescheduleAppointmentRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	rows, err := h.list.Execute(c.Request.Context(), middleware.Actor(c), appointmentuc.ListInput{
		BarberID: queryUint(c, "barber_id"),
		Status:   c.Query("status"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rows)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), appointmentuc.CreateInput{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		BarberID:  req.BarberID,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.Actor(c), appointmentuc.RescheduleInput{
		AppointmentID: id,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), middleware.Actor(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// CALENDAR
// ======================================================

func (h *AppointmentHandler) Calendar(c *gin.Context) {
	out, err := h.calendar.Execute(c.Request.Context(), middleware.Actor(c), appointmentuc.CalendarInput{
		View:     c.Query("view"),
		Date:     c.Query("date"),
		BarberID: queryUint(c, "barber_id"),
		Status:   c.Query("status"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) TodaySummary(c *gin.Context) {
	out, err := h.today.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

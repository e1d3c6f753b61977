package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/domain/staff"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/logger"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

// WorkingHoursHandler edits a profile's weekly map. Hours are advisory and
// never block bookings; barbers may edit only their own.
type WorkingHoursHandler struct {
	db    *gorm.DB
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewWorkingHoursHandler(db *gorm.DB, cache readcache.Cache, audit *audit.Dispatcher) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, cache: cache, audit: audit}
}

type DayHoursRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	p, ok := h.target(c)
	if !ok {
		return
	}
	hours, err := staff.Normalize(p.WorkingHours.Data())
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("stored working hours are invalid",
			zap.Uint("profile_id", p.ID), zap.Error(err))
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, hours)
}

// Replace overwrites the whole map; weekdays left out become days off.
func (h *WorkingHoursHandler) Replace(c *gin.Context) {
	p, ok := h.target(c)
	if !ok {
		return
	}

	var req models.WorkingHours
	if !bindJSON(c, &req) {
		return
	}

	hours, err := staff.Normalize(req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.save(c, p, hours, "working_hours_replaced")
}

func (h *WorkingHoursHandler) Toggle(c *gin.Context) {
	p, ok := h.target(c)
	if !ok {
		return
	}

	hours, err := staff.Toggle(p.WorkingHours.Data(), c.Param("day"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.save(c, p, hours, "working_hours_toggled")
}

func (h *WorkingHoursHandler) SetDay(c *gin.Context) {
	p, ok := h.target(c)
	if !ok {
		return
	}

	var req DayHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	hours, err := staff.SetDay(p.WorkingHours.Data(), c.Param("day"), models.DayHours{Start: req.Start, End: req.End})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.save(c, p, hours, "working_hours_updated")
}

func (h *WorkingHoursHandler) target(c *gin.Context) (*models.Profile, bool) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	if !actor.CanActOn(id) {
		httperr.Forbidden(c)
		return nil, false
	}
	return findProfile(c, h.db, actor.OrganizationID, id)
}

func (h *WorkingHoursHandler) save(c *gin.Context, p *models.Profile, hours models.WorkingHours, action string) {
	actor := middleware.Actor(c)

	if err := saveWorkingHours(c, h.db, p, hours); err != nil {
		httperr.FromError(c, err)
		return
	}

	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, readcache.Staff)
	writeAudit(h.audit, actor, action, "profile", p.ID, nil)
	httpresp.OK(c, hours)
}

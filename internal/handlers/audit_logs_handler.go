package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

// List pages the audit trail. from/to are calendar dates in UTC, to inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)

	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.ListFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if v := c.Query("from"); v != "" {
		from, err := timezone.ParseDate(v, "UTC")
		if err != nil {
			httperr.FromError(c, httperr.ErrBusiness("invalid_date"))
			return
		}
		f.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := timezone.ParseDate(v, "UTC")
		if err != nil {
			httperr.FromError(c, httperr.ErrBusiness("invalid_date"))
			return
		}
		f.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.logger.List(c.Request.Context(), actor.OrganizationID, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, logs, total, f.Limit, f.Offset)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	financeuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/finance"
)

type FinanceHandler struct {
	summary   *financeuc.GetSummary
	dashboard *financeuc.GetDashboard
}

func NewFinanceHandler(summary *financeuc.GetSummary, dashboard *financeuc.GetDashboard) *FinanceHandler {
	return &FinanceHandler{summary: summary, dashboard: dashboard}
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	out, err := h.summary.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *FinanceHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

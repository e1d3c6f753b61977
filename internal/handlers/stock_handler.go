package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	stockuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/stock"
)

type StockHandler struct {
	record    *stockuc.RecordMovement
	history   *stockuc.ListHistory
	reconcile *stockuc.Reconcile
}

func NewStockHandler(record *stockuc.RecordMovement, history *stockuc.ListHistory, reconcile *stockuc.Reconcile) *StockHandler {
	return &StockHandler{record: record, history: history, reconcile: reconcile}
}

type StockMovementRequest struct {
	MovementType string `json:"movement_type" binding:"required"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason" binding:"required"`
	Notes        string `json:"notes"`
}

// Record posts a manual movement against a product.
func (h *StockHandler) Record(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req StockMovementRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.record.Execute(c.Request.Context(), middleware.Actor(c), productID, domain.Request{
		Type:     domain.MovementType(req.MovementType),
		Quantity: req.Quantity,
		Reason:   req.Reason,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *StockHandler) History(c *gin.Context) {
	rows, err := h.history.Execute(c.Request.Context(), middleware.Actor(c), domain.HistoryFilter{
		ProductID: queryUint(c, "product_id"),
		Limit:     queryInt(c, "limit", 0),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *StockHandler) Reconcile(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	out, err := h.reconcile.Execute(c.Request.Context(), middleware.Actor(c), productID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// Reasons lists the accepted reasons per manual movement type.
func (h *StockHandler) Reasons(c *gin.Context) {
	httpresp.OK(c, gin.H{
		string(domain.MovementIn):         domain.Reasons(domain.MovementIn),
		string(domain.MovementOut):        domain.Reasons(domain.MovementOut),
		string(domain.MovementAdjustment): domain.Reasons(domain.MovementAdjustment),
	})
}

package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

type StockMovementDTO struct {
	ID            uint      `json:"id"`
	ProductID     uint      `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	MovementType  string    `json:"movement_type"`
	Reason        string    `json:"reason"`
	Notes         string    `json:"notes"`
	CreatedByID   *uint     `json:"created_by_profile_id"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewStockMovementList(rows []models.StockMovement) []StockMovementDTO {
	out := make([]StockMovementDTO, 0, len(rows))
	for _, m := range rows {
		item := StockMovementDTO{
			ID:           m.ID,
			ProductID:    m.ProductID,
			Quantity:     m.Quantity,
			MovementType: m.MovementType,
			Reason:       m.Reason,
			Notes:        m.Notes,
			CreatedByID:  m.CreatedByProfileID,
			CreatedAt:    m.CreatedAt,
		}
		if m.Product != nil {
			item.ProductName = m.Product.Name
		}
		if m.CreatedBy != nil {
			item.CreatedByName = m.CreatedBy.FullName
		}
		out = append(out, item)
	}
	return out
}

package stock

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/metrics"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

type RecordMovement struct {
	repo  domain.Repository
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewRecordMovement(repo domain.Repository, cache readcache.Cache, audit *audit.Dispatcher) *RecordMovement {
	return &RecordMovement{repo: repo, cache: cache, audit: audit}
}

type MovementOutput struct {
	Movement *models.StockMovement `json:"movement"`
	Product  *models.Product       `json:"product"`
}

func (uc *RecordMovement) Execute(ctx context.Context, actor authz.Actor, productID uint, req domain.Request) (*MovementOutput, error) {
	movement, product, err := uc.repo.Record(ctx, actor.OrganizationID, productID, actor.ProfileRef(), req)
	if err != nil {
		return nil, err
	}

	readcache.Forget(ctx, uc.cache, actor.OrganizationID, readcache.Products, readcache.StockMovements)
	metrics.RecordStockMovement(movement.MovementType)

	uc.audit.Dispatch(audit.Event{
		OrganizationID: actor.OrganizationID,
		ProfileID:      actor.ProfileRef(),
		Action:         "stock_movement_created",
		Entity:         "product",
		EntityID:       &product.ID,
		Metadata: map[string]any{
			"movement_id": movement.ID,
			"type":        movement.MovementType,
			"reason":      movement.Reason,
			"delta":       movement.Quantity,
			"new_stock":   product.StockQuantity,
		},
	})

	return &MovementOutput{Movement: movement, Product: product}, nil
}

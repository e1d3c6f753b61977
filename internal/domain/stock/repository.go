package stock

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

type HistoryFilter struct {
	ProductID uint
	Limit     int
}

type Repository interface {
	// Record locks the product row, applies r against the locked stock and
	// persists the ledger row and the new counter atomically.
	Record(ctx context.Context, organizationID, productID uint, profileID *uint, r Request) (*models.StockMovement, *models.Product, error)

	History(ctx context.Context, organizationID uint, f HistoryFilter) ([]models.StockMovement, error)

	// LedgerSum returns the product counter and the sum of its ledger quantities.
	LedgerSum(ctx context.Context, organizationID, productID uint) (counter int, sum int, err error)
}

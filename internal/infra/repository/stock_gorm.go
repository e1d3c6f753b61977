package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-backoffice/internal/domain/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type StockGormRepository struct {
	db *gorm.DB
}

func NewStockGormRepository(db *gorm.DB) *StockGormRepository {
	return &StockGormRepository{db: db}
}

func (r *StockGormRepository) Record(
	ctx context.Context,
	organizationID uint,
	productID uint,
	profileID *uint,
	req stock.Request,
) (*models.StockMovement, *models.Product, error) {

	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		movement models.StockMovement
		product  models.Product
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND organization_id = ?", productID, organizationID).
			First(&product).Error; err != nil {
			return notFound(err, "product_not_found")
		}

		res, err := stock.Apply(product.StockQuantity, req)
		if err != nil {
			return err
		}

		movement = models.StockMovement{
			OrganizationID:     organizationID,
			ProductID:          product.ID,
			Quantity:           res.Delta,
			MovementType:       string(req.Type),
			Reason:             req.Reason,
			Notes:              req.Notes,
			CreatedByProfileID: profileID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", res.NewStock).Error; err != nil {
			return err
		}
		product.StockQuantity = res.NewStock
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &movement, &product, nil
}

func (r *StockGormRepository) History(ctx context.Context, organizationID uint, f stock.HistoryFilter) ([]models.StockMovement, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	q := r.db.WithContext(ctx).
		Preload("Product").
		Preload("CreatedBy").
		Where("organization_id = ?", organizationID)
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}

	var rows []models.StockMovement
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StockGormRepository) LedgerSum(ctx context.Context, organizationID, productID uint) (int, int, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", productID, organizationID).
		First(&product).Error; err != nil {
		return 0, 0, notFound(err, "product_not_found")
	}

	var sum int
	if err := r.db.WithContext(ctx).
		Model(&models.StockMovement{}).
		Where("product_id = ? AND organization_id = ?", productID, organizationID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error; err != nil {
		return 0, 0, err
	}
	return product.StockQuantity, sum, nil
}

var _ stock.Repository = (*StockGormRepository)(nil)

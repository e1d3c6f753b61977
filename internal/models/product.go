package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a retail item. StockQuantity only changes through stock movements.
type Product struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"index;not null" json:"organization_id"`

	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"size:255" json:"description"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"cost_price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	MinStockAlert int             `gorm:"not null;default:0" json:"min_stock_alert"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockAlert
}

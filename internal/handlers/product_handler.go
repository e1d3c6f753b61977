package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

type ProductHandler struct {
	db    *gorm.DB
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewProductHandler(db *gorm.DB, cache readcache.Cache, audit *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, cache: cache, audit: audit}
}

// --------- Requests ---------

// Stock is not accepted here; new products start at zero and move through the ledger.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	MinStockAlert int             `json:"min_stock_alert" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	MinStockAlert *int             `json:"min_stock_alert,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

type ProductResponse struct {
	models.Product
	LowStock bool `json:"low_stock"`
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.IsLowStock()}
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)

	active := queryBool(c, "active")
	lowStock := c.Query("low_stock") == "true"
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	key := readcache.Key(actor.OrganizationID, readcache.Products, boolKey(active), lowStock, query)
	rows, err := readcache.Remember(c.Request.Context(), h.cache, key,
		readcache.Tags(actor.OrganizationID, readcache.Products),
		func() ([]ProductResponse, error) {
			q := h.db.WithContext(c.Request.Context()).Where("organization_id = ?", actor.OrganizationID)
			if active != nil {
				q = q.Where("is_active = ?", *active)
			}
			if lowStock {
				q = q.Where("stock_quantity <= min_stock_alert")
			}
			if query != "" {
				like := "%" + query + "%"
				q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
			}

			var products []models.Product
			if err := q.Order("name ASC").Find(&products).Error; err != nil {
				return nil, err
			}

			out := make([]ProductResponse, 0, len(products))
			for _, p := range products {
				out = append(out, newProductResponse(p))
			}
			return out, nil
		})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ProductHandler) Get(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	product, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}
	httpresp.OK(c, newProductResponse(*product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.SalePrice.IsNegative() || req.CostPrice.IsNegative() {
		httperr.FromError(c, httperr.ErrBusiness("invalid_amount"))
		return
	}

	product := models.Product{
		OrganizationID: actor.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		SalePrice:      req.SalePrice,
		CostPrice:      req.CostPrice,
		MinStockAlert:  req.MinStockAlert,
		IsActive:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, readcache.Products)
	writeAudit(h.audit, actor, "product_created", "product", product.ID, gin.H{"name": product.Name})
	httpresp.Created(c, newProductResponse(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			httperr.FromError(c, httperr.ErrBusiness("invalid_amount"))
			return
		}
		updates["sale_price"] = *req.SalePrice
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			httperr.FromError(c, httperr.ErrBusiness("invalid_amount"))
			return
		}
		updates["cost_price"] = *req.CostPrice
	}
	if req.MinStockAlert != nil {
		if *req.MinStockAlert < 0 {
			httperr.FromError(c, httperr.ErrBusiness("invalid_quantity"))
			return
		}
		updates["min_stock_alert"] = *req.MinStockAlert
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	// stock_quantity is never part of updates; a concurrent ledger write is not overwritten
	if len(updates) > 0 {
		res := h.db.WithContext(c.Request.Context()).
			Model(&models.Product{}).
			Where("id = ? AND organization_id = ?", id, actor.OrganizationID).
			Updates(updates)
		if res.Error != nil {
			httperr.FromError(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			httperr.FromError(c, httperr.ErrBusiness("product_not_found"))
			return
		}
	}

	product, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}

	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, readcache.Products, readcache.StockMovements)
	writeAudit(h.audit, actor, "product_updated", "product", id, nil)
	httpresp.OK(c, newProductResponse(*product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Product{}).
		Where("id = ? AND organization_id = ?", id, actor.OrganizationID).
		Update("is_active", false)
	if res.Error != nil {
		httperr.FromError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.FromError(c, httperr.ErrBusiness("product_not_found"))
		return
	}

	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, readcache.Products)
	writeAudit(h.audit, actor, "product_deactivated", "product", id, nil)
	httpresp.NoContent(c)
}

func (h *ProductHandler) find(c *gin.Context, orgID, id uint) (*models.Product, bool) {
	var product models.Product
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&product).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "product_not_found"))
		return nil, false
	}
	return &product, true
}

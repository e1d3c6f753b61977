package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/domain/staff"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, cache readcache.Cache, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cache, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	DurationMinutes int              `json:"duration_minutes" binding:"required,min=1"`
	CommissionRate  *decimal.Decimal `json:"commission_rate"`
	Category        string           `json:"category"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	CommissionRate  *decimal.Decimal `json:"commission_rate,omitempty"`
	Category        *string          `json:"category,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	active := queryBool(c, "active")
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	key := readcache.Key(actor.OrganizationID, readcache.Services, category, boolKey(active), query)
	services, err := readcache.Remember(c.Request.Context(), h.cache, key,
		readcache.Tags(actor.OrganizationID, readcache.Services),
		func() ([]models.Service, error) {
			q := h.db.WithContext(c.Request.Context()).Where("organization_id = ?", actor.OrganizationID)
			if category != "" {
				q = q.Where("LOWER(category) = ?", category)
			}
			if active != nil {
				q = q.Where("is_active = ?", *active)
			}
			if query != "" {
				like := "%" + query + "%"
				q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
			}

			var rows []models.Service
			err := q.Order("name ASC").Find(&rows).Error
			return rows, err
		})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Price.IsNegative() {
		httperr.FromError(c, httperr.ErrBusiness("invalid_amount"))
		return
	}

	service := models.Service{
		OrganizationID:  actor.OrganizationID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		IsActive:        true,
	}
	if req.CommissionRate != nil {
		if err := staff.ValidateCommission(*req.CommissionRate); err != nil {
			httperr.FromError(c, err)
			return
		}
		service.CommissionRate = *req.CommissionRate
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "service_created", "service", service.ID, gin.H{"name": service.Name})
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	service, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.FromError(c, httperr.ErrBusiness("invalid_amount"))
			return
		}
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 {
			httperr.FromError(c, httperr.ErrBusiness("invalid_request"))
			return
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.CommissionRate != nil {
		if err := staff.ValidateCommission(*req.CommissionRate); err != nil {
			httperr.FromError(c, err)
			return
		}
		service.CommissionRate = *req.CommissionRate
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "service_updated", "service", service.ID, nil)
	httpresp.OK(c, service)
}

// Delete deactivates the service; past appointments keep referencing it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ? AND organization_id = ?", id, actor.OrganizationID).
		Update("is_active", false)
	if res.Error != nil {
		httperr.FromError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.FromError(c, httperr.ErrBusiness("service_not_found"))
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "service_deactivated", "service", id, nil)
	httpresp.NoContent(c)
}

func (h *ServiceHandler) find(c *gin.Context, orgID, id uint) (*models.Service, bool) {
	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&service).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "service_not_found"))
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) changed(c *gin.Context, orgID uint) {
	readcache.Forget(c.Request.Context(), h.cache, orgID, readcache.Services, readcache.Appointments)
}

func boolKey(b *bool) string {
	if b == nil {
		return "any"
	}
	if *b {
		return "true"
	}
	return "false"
}

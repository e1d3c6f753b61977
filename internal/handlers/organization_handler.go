package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/media"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
	"github.com/BruksfildServices01/barber-backoffice/internal/validators"
)

type OrganizationHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	cache    readcache.Cache
	audit    *audit.Dispatcher
}

func NewOrganizationHandler(db *gorm.DB, uploader *media.Uploader, cache readcache.Cache, audit *audit.Dispatcher) *OrganizationHandler {
	return &OrganizationHandler{db: db, uploader: uploader, cache: cache, audit: audit}
}

type UpdateOrganizationRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	org, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, org)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	org, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]string{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len([]rune(name)) < 2 {
			fields["name"] = "Informe o nome da barbearia."
		}
		org.Name = name
	}
	if req.Phone != nil {
		org.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && !validators.IsEmailFormat(email) {
			fields["email"] = "E-mail inválido."
		}
		org.Email = email
	}
	if req.Address != nil {
		org.Address = strings.TrimSpace(*req.Address)
	}
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	tzChanged := false
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.FromError(c, httperr.ErrBusiness("invalid_timezone"))
			return
		}
		tzChanged = tz != org.Timezone
		org.Timezone = tz
	}

	if err := h.db.WithContext(c.Request.Context()).Save(org).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	// every cached read renders times in the organization zone
	entities := []string{readcache.Organization}
	if tzChanged {
		entities = append(entities, readcache.Appointments, readcache.Finance, readcache.Dashboard)
	}
	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, entities...)

	writeAudit(h.audit, actor, "organization_updated", "organization", org.ID, nil)
	httpresp.OK(c, org)
}

func (h *OrganizationHandler) UploadLogo(c *gin.Context) {
	actor := middleware.Actor(c)

	url, ok := uploadImage(c, h.uploader, actor.OrganizationID, "logos")
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Organization{}).
		Where("id = ?", actor.OrganizationID).
		Update("logo_url", url).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, readcache.Organization)
	writeAudit(h.audit, actor, "logo_updated", "organization", actor.OrganizationID, nil)
	httpresp.OK(c, gin.H{"logo_url": url})
}

func (h *OrganizationHandler) load(c *gin.Context) (*models.Organization, bool) {
	var org models.Organization
	if err := h.db.WithContext(c.Request.Context()).First(&org, middleware.Actor(c).OrganizationID).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "organization_not_found"))
		return nil, false
	}
	return &org, true
}

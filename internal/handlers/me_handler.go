package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/media"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

type MeHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	cache    readcache.Cache
	audit    *audit.Dispatcher
}

func NewMeHandler(db *gorm.DB, uploader *media.Uploader, cache readcache.Cache, audit *audit.Dispatcher) *MeHandler {
	return &MeHandler{db: db, uploader: uploader, cache: cache, audit: audit}
}

type MeResponse struct {
	Profile      *models.Profile      `json:"profile"`
	Organization *models.Organization `json:"organization"`
	IsAdmin      bool                 `json:"is_admin"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	var profile models.Profile
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Organization").
		Where("organization_id = ?", actor.OrganizationID).
		First(&profile, actor.ProfileID).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "profile_not_found"))
		return
	}

	org := profile.Organization
	profile.Organization = nil

	httpresp.OK(c, MeResponse{
		Profile:      &profile,
		Organization: org,
		IsAdmin:      profile.IsAdmin(),
	})
}

// UploadAvatar accepts a multipart "file" and stores it as the caller's avatar.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	actor := middleware.Actor(c)

	url, ok := uploadImage(c, h.uploader, actor.OrganizationID, "avatars")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Profile{}).
		Where("id = ? AND organization_id = ?", actor.ProfileID, actor.OrganizationID).
		Update("avatar_url", url)
	if res.Error != nil {
		httperr.FromError(c, res.Error)
		return
	}

	readcache.Forget(c.Request.Context(), h.cache, actor.OrganizationID, readcache.Staff)
	h.audit.Dispatch(audit.Event{
		OrganizationID: actor.OrganizationID,
		ProfileID:      actor.ProfileRef(),
		Action:         "avatar_updated",
		Entity:         "profile",
		EntityID:       actor.ProfileRef(),
	})

	httpresp.OK(c, gin.H{"avatar_url": url})
}

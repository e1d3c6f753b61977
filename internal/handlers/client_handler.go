package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/dto"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
	"github.com/BruksfildServices01/barber-backoffice/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, cache readcache.Cache, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, cache: cache, audit: audit}
}

type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type ClientDetail struct {
	models.Client
	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	key := readcache.Key(actor.OrganizationID, readcache.Clients, query)
	clients, err := readcache.Remember(c.Request.Context(), h.cache, key,
		readcache.Tags(actor.OrganizationID, readcache.Clients),
		func() ([]models.Client, error) {
			q := h.db.WithContext(c.Request.Context()).Where("organization_id = ?", actor.OrganizationID)
			if query != "" {
				like := "%" + query + "%"
				q = q.Where("(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
			}

			var rows []models.Client
			err := q.Order("name ASC").Find(&rows).Error
			return rows, err
		})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, clients)
}

// Get returns the client with their appointments, newest first.
func (h *ClientHandler) Get(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	client, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Preload("Client").Preload("Service").Preload("Barber").
		Where("organization_id = ? AND client_id = ?", actor.OrganizationID, id)
	if !actor.IsAdmin() {
		q = q.Where("barber_id = ?", actor.ProfileID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time DESC").Find(&apps).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var org models.Organization
	if err := h.db.WithContext(c.Request.Context()).Select("id", "timezone").First(&org, actor.OrganizationID).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "organization_not_found"))
		return
	}

	httpresp.OK(c, ClientDetail{
		Client:       *client,
		Appointments: dto.NewAppointmentList(apps, timezone.Location(org.Timezone)),
	})
}

func (h *ClientHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	if fields := validateClient(req); len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	client := models.Client{
		OrganizationID:     actor.OrganizationID,
		Name:               strings.TrimSpace(req.Name),
		Phone:              strings.TrimSpace(req.Phone),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:              req.Notes,
		CreatedByProfileID: actor.ProfileRef(),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "client_created", "client", client.ID, nil)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	client, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	if fields := validateClient(req); len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = strings.ToLower(strings.TrimSpace(req.Email))
	client.Notes = req.Notes

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "client_updated", "client", client.ID, nil)
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, actor.OrganizationID).
		Delete(&models.Client{})
	if res.Error != nil {
		httperr.FromError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.FromError(c, httperr.ErrBusiness("client_not_found"))
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "client_deleted", "client", id, nil)
	httpresp.NoContent(c)
}

func (h *ClientHandler) find(c *gin.Context, orgID, id uint) (*models.Client, bool) {
	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&client).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "client_not_found"))
		return nil, false
	}
	return &client, true
}

func (h *ClientHandler) changed(c *gin.Context, orgID uint) {
	readcache.Forget(c.Request.Context(), h.cache, orgID, readcache.Clients, readcache.Appointments, readcache.Dashboard)
}

func validateClient(req ClientRequest) map[string]string {
	fields := map[string]string{}
	if len([]rune(strings.TrimSpace(req.Name))) < 2 {
		fields["name"] = "Informe o nome do cliente."
	}
	if email := strings.TrimSpace(req.Email); email != "" && !validators.IsEmailFormat(email) {
		fields["email"] = "E-mail inválido."
	}
	return fields
}

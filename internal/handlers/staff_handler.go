package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/domain/staff"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/validators"
)

type StaffHandler struct {
	db    *gorm.DB
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, cache readcache.Cache, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, cache: cache, audit: audit}
}

type CreateStaffRequest struct {
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Password       string           `json:"password"`
	Phone          string           `json:"phone"`
	Role           string           `json:"role"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

type UpdateStaffRequest struct {
	FullName       *string          `json:"full_name,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
	Role           *string          `json:"role,omitempty"`
}

func (h *StaffHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	active := queryBool(c, "active")

	key := readcache.Key(actor.OrganizationID, readcache.Staff, boolKey(active))
	rows, err := readcache.Remember(c.Request.Context(), h.cache, key,
		readcache.Tags(actor.OrganizationID, readcache.Staff),
		func() ([]models.Profile, error) {
			q := h.db.WithContext(c.Request.Context()).Where("organization_id = ?", actor.OrganizationID)
			if active != nil {
				q = q.Where("is_active = ?", *active)
			}
			var profiles []models.Profile
			err := q.Order("full_name ASC").Find(&profiles).Error
			return profiles, err
		})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// Create adds a login for a staff member of the caller's organization.
func (h *StaffHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleBarber
	}

	fields := map[string]string{}
	if len([]rune(strings.TrimSpace(req.FullName))) < 2 {
		fields["full_name"] = "Informe o nome completo."
	}
	if !validators.IsEmailFormat(email) {
		fields["email"] = "E-mail inválido."
	}
	if len(req.Password) < 6 {
		fields["password"] = "A senha deve ter pelo menos 6 caracteres."
	}
	if !staff.IsRole(role) {
		fields["role"] = "Perfil inválido."
	}
	if req.CommissionRate != nil && staff.ValidateCommission(*req.CommissionRate) != nil {
		fields["commission_rate"] = "Comissão deve estar entre 0 e 100."
	}
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count > 0 {
		httperr.FromError(c, httperr.ErrBusiness("email_already_exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	profile := models.Profile{
		OrganizationID: actor.OrganizationID,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          email,
		PasswordHash:   string(hashed),
		Phone:          strings.TrimSpace(req.Phone),
		Role:           role,
		IsActive:       true,
	}
	if req.CommissionRate != nil {
		profile.CommissionRate = decimal.NewNullDecimal(*req.CommissionRate)
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&profile).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			err = httperr.ErrBusiness("email_already_exists")
		}
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "staff_created", "profile", profile.ID, gin.H{"role": role})
	httpresp.Created(c, profile)
}

func (h *StaffHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	profile, ok := findProfile(c, h.db, actor.OrganizationID, id)
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if len([]rune(name)) < 2 {
			httperr.Validation(c, map[string]string{"full_name": "Informe o nome completo."})
			return
		}
		profile.FullName = name
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CommissionRate != nil {
		if err := staff.ValidateCommission(*req.CommissionRate); err != nil {
			httperr.FromError(c, err)
			return
		}
		profile.CommissionRate = decimal.NewNullDecimal(*req.CommissionRate)
	}
	if req.Role != nil {
		if !staff.IsRole(*req.Role) {
			httperr.FromError(c, httperr.ErrBusiness("invalid_role"))
			return
		}
		// an admin cannot demote themselves and lock the organization out
		if profile.ID == actor.ProfileID && *req.Role != models.RoleAdmin {
			httperr.FromError(c, httperr.ErrBusiness("invalid_role"))
			return
		}
		profile.Role = *req.Role
	}
	if req.IsActive != nil {
		if profile.ID == actor.ProfileID && !*req.IsActive {
			httperr.FromError(c, httperr.ErrBusiness("cannot_deactivate_self"))
			return
		}
		profile.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(profile).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "staff_updated", "profile", profile.ID, nil)
	httpresp.OK(c, profile)
}

func (h *StaffHandler) changed(c *gin.Context, orgID uint) {
	readcache.Forget(c.Request.Context(), h.cache, orgID, readcache.Staff, readcache.Finance, readcache.Appointments)
}

func findProfile(c *gin.Context, db *gorm.DB, orgID, id uint) (*models.Profile, bool) {
	var profile models.Profile
	if err := db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&profile).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "profile_not_found"))
		return nil, false
	}
	return &profile, true
}

func saveWorkingHours(c *gin.Context, db *gorm.DB, p *models.Profile, wh models.WorkingHours) error {
	p.WorkingHours = datatypes.NewJSONType(wh)
	return db.WithContext(c.Request.Context()).
		Model(&models.Profile{}).
		Where("id = ? AND organization_id = ?", p.ID, p.OrganizationID).
		Update("working_hours", p.WorkingHours).Error
}

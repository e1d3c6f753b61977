package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/config"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher

	// emailDomainOK resolves MX/A records for the e-mail domain.
	emailDomainOK func(email string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		audit:         audit,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// WithEmailDomainCheck replaces the DNS lookup used during registration.
func (h *AuthHandler) WithEmailDomainCheck(fn func(email string) bool) *AuthHandler {
	h.emailDomainOK = fn
	return h
}

// --------- Requests ---------

type RegisterOrganization struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type RegisterAdmin struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type RegisterRequest struct {
	Organization RegisterOrganization `json:"organization"`
	Admin        RegisterAdmin        `json:"admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Profile      *models.Profile      `json:"profile"`
	Organization *models.Organization `json:"organization"`
	Token        string               `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	org := models.Organization{
		Name:     strings.TrimSpace(req.Organization.Name),
		Slug:     strings.ToLower(strings.TrimSpace(req.Organization.Slug)),
		Phone:    strings.TrimSpace(req.Organization.Phone),
		Address:  strings.TrimSpace(req.Organization.Address),
		Timezone: h.config.DefaultTimezone,
	}
	if org.Slug == "" {
		org.Slug = slug.Make(org.Name)
	}

	email := strings.ToLower(strings.TrimSpace(req.Admin.Email))

	if fields := h.validateRegister(org, req.Admin, email); len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	profile := models.Profile{
		FullName:     strings.TrimSpace(req.Admin.FullName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Admin.Phone),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Organization{}).Where("slug = ?", org.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slug_already_exists")
		}

		if err := tx.Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("email_already_exists")
		}

		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		profile.OrganizationID = org.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			err = httperr.ErrBusiness("slug_already_exists")
		}
		httperr.FromError(c, err)
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token de acesso.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: org.ID,
		ProfileID:      &profile.ID,
		Action:         "organization_registered",
		Entity:         "organization",
		EntityID:       &org.ID,
		Metadata:       map[string]any{"slug": org.Slug},
	})

	httpresp.Created(c, AuthResponse{Profile: &profile, Organization: &org, Token: token})
}

func (h *AuthHandler) validateRegister(org models.Organization, admin RegisterAdmin, email string) map[string]string {
	fields := map[string]string{}

	if len([]rune(org.Name)) < 2 {
		fields["organization.name"] = "Informe o nome da barbearia."
	}
	if !validators.IsSlug(org.Slug) {
		fields["organization.slug"] = "Use apenas letras minúsculas, números e hífens."
	}
	if len([]rune(strings.TrimSpace(admin.FullName))) < 2 {
		fields["admin.full_name"] = "Informe seu nome completo."
	}
	switch {
	case !validators.IsEmailFormat(email):
		fields["admin.email"] = "E-mail inválido."
	case !h.emailDomainOK(email):
		fields["admin.email"] = "O domínio do e-mail informado não parece ser válido."
	}
	if len(admin.Password) < 6 {
		fields["admin.password"] = "A senha deve ter pelo menos 6 caracteres."
	}

	return fields
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var profile models.Profile
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Organization").
		Where("email = ?", email).
		First(&profile).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, httperr.ErrBusiness("invalid_credentials"))
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_credentials"))
		return
	}

	if !profile.IsActive {
		httperr.FromError(c, httperr.ErrBusiness("account_inactive"))
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token de acesso.")
		return
	}

	org := profile.Organization
	profile.Organization = nil

	httpresp.OK(c, AuthResponse{Profile: &profile, Organization: org, Token: token})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(p *models.Profile) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":            p.ID,
		"organizationId": p.OrganizationID,
		"role":           p.Role,
		"exp":            now.Add(h.config.JWTTTL).Unix(),
		"iat":            now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/logger"
	"github.com/BruksfildServices01/barber-backoffice/internal/metrics"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/webhook"
)

type IntegrationHandler struct {
	db      *gorm.DB
	client  *webhook.Client
	limiter *webhook.Limiter
	audit   *audit.Dispatcher
}

func NewIntegrationHandler(db *gorm.DB, client *webhook.Client, limiter *webhook.Limiter, audit *audit.Dispatcher) *IntegrationHandler {
	return &IntegrationHandler{db: db, client: client, limiter: limiter, audit: audit}
}

type UpsertIntegrationRequest struct {
	Name       string `json:"name"`
	WebhookURL string `json:"webhook_url"`
	APIKey     string `json:"api_key"`
	IsActive   bool   `json:"is_active"`
}

type TestWebhookRequest struct {
	WebhookURL string `json:"webhook_url"`
}

type TestWebhookResponse struct {
	Delivered  bool   `json:"delivered"`
	StatusCode int    `json:"status_code"`
	WebhookURL string `json:"webhook_url"`
}

func (h *IntegrationHandler) Get(c *gin.Context) {
	actor := middleware.Actor(c)

	integration, err := h.find(c, actor.OrganizationID)
	if err != nil {
		httperr.FromError(c, notFoundAs(err, "integration_not_found"))
		return
	}
	httpresp.OK(c, integration)
}

// Upsert writes the organization's single integration.
func (h *IntegrationHandler) Upsert(c *gin.Context) {
	actor := middleware.Actor(c)

	var req UpsertIntegrationRequest
	if !bindJSON(c, &req) {
		return
	}

	url := strings.TrimSpace(req.WebhookURL)
	if url != "" {
		if err := h.client.Validate(url); err != nil {
			httperr.FromError(c, err)
			return
		}
	} else if req.IsActive {
		httperr.FromError(c, httperr.ErrBusiness("webhook_url_missing"))
		return
	}

	integration, err := h.find(c, actor.OrganizationID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		integration = &models.Integration{
			OrganizationID:     actor.OrganizationID,
			Name:               "webhook",
			CreatedByProfileID: actor.ProfileRef(),
		}
	case err != nil:
		httperr.FromError(c, err)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		integration.Name = name
	}
	integration.WebhookURL = url
	integration.APIKey = strings.TrimSpace(req.APIKey)
	integration.IsActive = req.IsActive

	if err := h.db.WithContext(c.Request.Context()).Save(integration).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	writeAudit(h.audit, actor, "integration_saved", "integration", integration.ID, gin.H{"is_active": integration.IsActive})
	httpresp.OK(c, integration)
}

// Test posts a sample event. Delivery means the request went out without a
// network error; the receiver's status is returned but not judged.
func (h *IntegrationHandler) Test(c *gin.Context) {
	actor := middleware.Actor(c)

	var req TestWebhookRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	var apiKey string
	target := strings.TrimSpace(req.WebhookURL)
	integration, err := h.find(c, actor.OrganizationID)
	switch {
	case err == nil:
		if target == "" {
			target = integration.WebhookURL
		}
		// the stored key only travels to the stored endpoint
		if target == integration.WebhookURL {
			apiKey = integration.APIKey
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		httperr.FromError(c, err)
		return
	}

	if err := h.client.Validate(target); err != nil {
		httperr.FromError(c, err)
		return
	}

	if !h.limiter.Allow(actor.OrganizationID) {
		metrics.RecordWebhookTest("rate_limited")
		httperr.FromError(c, httperr.ErrBusiness("rate_limited"))
		return
	}

	status, err := h.client.Send(c.Request.Context(), target, apiKey, webhook.TestPayload(actor.OrganizationID, time.Now()))
	if err != nil {
		metrics.RecordWebhookTest("failed")
		logger.FromContext(c.Request.Context()).Warn("webhook test failed", zap.String("url", target), zap.Error(err))
		httperr.FromError(c, err)
		return
	}

	metrics.RecordWebhookTest("delivered")
	writeAudit(h.audit, actor, "webhook_tested", "integration", integrationID(integration), gin.H{"status_code": status})
	httpresp.OK(c, TestWebhookResponse{Delivered: true, StatusCode: status, WebhookURL: target})
}

func (h *IntegrationHandler) find(c *gin.Context, orgID uint) (*models.Integration, error) {
	var integration models.Integration
	if err := h.db.WithContext(c.Request.Context()).
		Where("organization_id = ?", orgID).
		First(&integration).Error; err != nil {
		return nil, err
	}
	return &integration, nil
}

func integrationID(i *models.Integration) uint {
	if i == nil {
		return 0
	}
	return i.ID
}

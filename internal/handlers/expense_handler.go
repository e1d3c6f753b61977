package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/domain/finance"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type ExpenseHandler struct {
	db    *gorm.DB
	cache readcache.Cache
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewExpenseHandler(db *gorm.DB, cache readcache.Cache, audit *audit.Dispatcher) *ExpenseHandler {
	return &ExpenseHandler{db: db, cache: cache, audit: audit, now: time.Now}
}

type ExpenseRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date" binding:"required"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
}

func (h *ExpenseHandler) Categories(c *gin.Context) {
	httpresp.List(c, finance.ExpenseCategories())
}

// List orders by due date. status/category filter; month is "YYYY-MM".
func (h *ExpenseHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)

	status := c.Query("status")
	category := c.Query("category")
	month := c.Query("month")

	q := h.db.WithContext(c.Request.Context()).Where("organization_id = ?", actor.OrganizationID)
	if status != "" && status != "all" {
		if !finance.IsExpenseStatus(status) {
			httperr.FromError(c, httperr.ErrBusiness("invalid_status"))
			return
		}
		q = q.Where("status = ?", status)
	}
	if category != "" && category != "all" {
		if !finance.IsExpenseCategory(category) {
			httperr.FromError(c, httperr.ErrBusiness("invalid_category"))
			return
		}
		q = q.Where("category = ?", category)
	}
	if month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			httperr.FromError(c, httperr.ErrBusiness("invalid_date"))
			return
		}
		q = q.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 1, 0))
	}

	key := readcache.Key(actor.OrganizationID, readcache.Expenses, status, category, month)
	rows, err := readcache.Remember(c.Request.Context(), h.cache, key,
		readcache.Tags(actor.OrganizationID, readcache.Expenses),
		func() ([]models.Expense, error) {
			var expenses []models.Expense
			err := q.Order("due_date ASC").Order("id ASC").Find(&expenses).Error
			return expenses, err
		})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense := models.Expense{
		OrganizationID:     actor.OrganizationID,
		Status:             models.ExpenseStatusPending,
		CreatedByProfileID: actor.ProfileRef(),
	}
	if err := h.apply(&expense, req); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&expense).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "expense_created", "expense", expense.ID, gin.H{"amount": expense.Amount})
	httpresp.Created(c, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	expense, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}

	var req ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.apply(expense, req); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(expense).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "expense_updated", "expense", expense.ID, nil)
	httpresp.OK(c, expense)
}

func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	expense, ok := h.find(c, actor.OrganizationID, id)
	if !ok {
		return
	}

	h.setStatus(expense, models.ExpenseStatusPaid)
	if err := h.db.WithContext(c.Request.Context()).Save(expense).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "expense_paid", "expense", expense.ID, gin.H{"amount": expense.Amount})
	httpresp.OK(c, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, actor.OrganizationID).
		Delete(&models.Expense{})
	if res.Error != nil {
		httperr.FromError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.FromError(c, httperr.ErrBusiness("expense_not_found"))
		return
	}

	h.changed(c, actor.OrganizationID)
	writeAudit(h.audit, actor, "expense_deleted", "expense", id, nil)
	httpresp.NoContent(c)
}

func (h *ExpenseHandler) apply(e *models.Expense, req ExpenseRequest) error {
	if !req.Amount.IsPositive() {
		return httperr.ErrBusiness("invalid_amount")
	}

	// due_date is a calendar date and is stored at UTC midnight.
	due, err := timezone.ParseDate(req.DueDate, "UTC")
	if err != nil {
		return httperr.ErrBusiness("invalid_date")
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = finance.DefaultExpenseCategory
	}
	if !finance.IsExpenseCategory(category) {
		return httperr.ErrBusiness("invalid_category")
	}

	if req.Status != "" {
		if !finance.IsExpenseStatus(req.Status) {
			return httperr.ErrBusiness("invalid_status")
		}
		h.setStatus(e, req.Status)
	}

	e.Name = strings.TrimSpace(req.Name)
	e.Description = req.Description
	e.Amount = req.Amount
	e.DueDate = due
	e.Category = category
	return nil
}

func (h *ExpenseHandler) setStatus(e *models.Expense, status string) {
	switch {
	case status == models.ExpenseStatusPaid && e.PaidAt == nil:
		now := h.now().UTC()
		e.PaidAt = &now
	case status == models.ExpenseStatusPending:
		e.PaidAt = nil
	}
	e.Status = status
}

func (h *ExpenseHandler) find(c *gin.Context, orgID, id uint) (*models.Expense, bool) {
	var expense models.Expense
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&expense).Error; err != nil {
		httperr.FromError(c, notFoundAs(err, "expense_not_found"))
		return nil, false
	}
	return &expense, true
}

func (h *ExpenseHandler) changed(c *gin.Context, orgID uint) {
	readcache.Forget(c.Request.Context(), h.cache, orgID, readcache.Expenses, readcache.Finance)
}

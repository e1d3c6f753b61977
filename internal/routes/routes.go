package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/BruksfildServices01/barber-backoffice/internal/config"
	"github.com/BruksfildServices01/barber-backoffice/internal/handlers"
	"github.com/BruksfildServices01/barber-backoffice/internal/metrics"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
)

type Handlers struct {
	fx.In

	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Me           *handlers.MeHandler
	Organization *handlers.OrganizationHandler
	Appointment  *handlers.AppointmentHandler
	Client       *handlers.ClientHandler
	Service      *handlers.ServiceHandler
	Product      *handlers.ProductHandler
	Stock        *handlers.StockHandler
	Expense      *handlers.ExpenseHandler
	Finance      *handlers.FinanceHandler
	Staff        *handlers.StaffHandler
	WorkingHours *handlers.WorkingHoursHandler
	Integration  *handlers.IntegrationHandler
	AuditLogs    *handlers.AuditLogsHandler

	Sessions *middleware.SessionStore
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, h Handlers) {

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(cfg, h.Sessions))

	admin := secured.Group("")
	admin.Use(middleware.RequireAdmin())

	// ======================================================
	// PROFILE & ORGANIZATION
	// ======================================================
	secured.GET("/me", h.Me.GetMe)
	secured.POST("/me/avatar", h.Me.UploadAvatar)

	secured.GET("/organization", h.Organization.Get)
	admin.PATCH("/organization", h.Organization.Update)
	admin.POST("/organization/logo", h.Organization.UploadLogo)

	secured.GET("/dashboard", h.Finance.Dashboard)

	// ======================================================
	// APPOINTMENTS
	// ======================================================
	secured.GET("/appointments", h.Appointment.List)
	secured.POST("/appointments", h.Appointment.Create)
	secured.GET("/appointments/today-summary", h.Appointment.TodaySummary)
	secured.PATCH("/appointments/:id/reschedule", h.Appointment.Reschedule)
	secured.PATCH("/appointments/:id/status", h.Appointment.ChangeStatus)
	secured.GET("/calendar", h.Appointment.Calendar)

	// ======================================================
	// CATALOGS
	// ======================================================
	secured.GET("/clients", h.Client.List)
	secured.POST("/clients", h.Client.Create)
	secured.GET("/clients/:id", h.Client.Get)
	secured.PUT("/clients/:id", h.Client.Update)
	secured.DELETE("/clients/:id", h.Client.Delete)

	secured.GET("/services", h.Service.List)
	secured.POST("/services", h.Service.Create)
	secured.PATCH("/services/:id", h.Service.Update)
	secured.DELETE("/services/:id", h.Service.Delete)

	secured.GET("/products", h.Product.List)
	secured.POST("/products", h.Product.Create)
	secured.GET("/products/:id", h.Product.Get)
	secured.PATCH("/products/:id", h.Product.Update)
	secured.DELETE("/products/:id", h.Product.Delete)

	// ======================================================
	// STOCK
	// ======================================================
	secured.POST("/products/:id/stock-movements", h.Stock.Record)
	admin.GET("/products/:id/stock-reconciliation", h.Stock.Reconcile)
	secured.GET("/stock-movements", h.Stock.History)
	secured.GET("/stock-movements/reasons", h.Stock.Reasons)

	// ======================================================
	// STAFF
	// ======================================================
	secured.GET("/staff", h.Staff.List)
	admin.POST("/staff", h.Staff.Create)
	admin.PATCH("/staff/:id", h.Staff.Update)

	secured.GET("/staff/:id/working-hours", h.WorkingHours.Get)
	secured.PUT("/staff/:id/working-hours", h.WorkingHours.Replace)
	secured.POST("/staff/:id/working-hours/:day/toggle", h.WorkingHours.Toggle)
	secured.PATCH("/staff/:id/working-hours/:day", h.WorkingHours.SetDay)

	// ======================================================
	// ADMIN
	// ======================================================
	admin.GET("/finance/summary", h.Finance.Summary)

	admin.GET("/expenses", h.Expense.List)
	admin.GET("/expenses/categories", h.Expense.Categories)
	admin.POST("/expenses", h.Expense.Create)
	admin.PUT("/expenses/:id", h.Expense.Update)
	admin.PATCH("/expenses/:id/pay", h.Expense.MarkPaid)
	admin.DELETE("/expenses/:id", h.Expense.Delete)

	admin.GET("/integrations", h.Integration.Get)
	admin.PUT("/integrations", h.Integration.Upsert)
	admin.POST("/integrations/test", h.Integration.Test)

	admin.GET("/audit-logs", h.AuditLogs.List)
}

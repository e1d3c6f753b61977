package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/config"
	"github.com/BruksfildServices01/barber-backoffice/internal/handlers"
	"github.com/BruksfildServices01/barber-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/barber-backoffice/internal/media"
	"github.com/BruksfildServices01/barber-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/routes"
	"github.com/BruksfildServices01/barber-backoffice/internal/server"
	"github.com/BruksfildServices01/barber-backoffice/internal/testutil"
	appointmentuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/appointment"
	financeuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/finance"
	stockuc "github.com/BruksfildServices01/barber-backoffice/internal/usecase/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/webhook"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

// newTestServer allows private webhook targets so loopback receivers work;
// opts may tighten the config.
func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:                   "test-secret",
		JWTTTL:                      time.Hour,
		DefaultTimezone:             "America/Sao_Paulo",
		WebhookTimeout:              time.Second,
		WebhookTestPerMinute:        2,
		WebhookAllowPrivateNetworks: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cache := readcache.NewMemory(time.Minute)
	auditLogger := audit.New(db)
	d := audit.NewDispatcher(auditLogger, zap.NewNop())
	t.Cleanup(d.Close)

	apptRepo := repository.NewAppointmentGormRepository(db)
	stockRepo := repository.NewStockGormRepository(db)
	financeRepo := repository.NewFinanceGormRepository(db)
	uploader := media.NewUploader(cfg)

	h := routes.Handlers{
		Health: handlers.NewHealthHandler(db),
		Auth: handlers.NewAuthHandler(db, cfg, d).
			WithEmailDomainCheck(func(email string) bool { return true }),
		Me:           handlers.NewMeHandler(db, uploader, cache, d),
		Organization: handlers.NewOrganizationHandler(db, uploader, cache, d),
		Appointment: handlers.NewAppointmentHandler(
			appointmentuc.NewListAppointments(apptRepo, cache),
			appointmentuc.NewCreateAppointment(apptRepo, cache, d),
			appointmentuc.NewRescheduleAppointment(apptRepo, cache, d),
			appointmentuc.NewChangeStatus(apptRepo, cache, d),
			appointmentuc.NewGetCalendar(apptRepo, cache),
			appointmentuc.NewTodaySummary(apptRepo, cache),
		),
		Client:  handlers.NewClientHandler(db, cache, d),
		Service: handlers.NewServiceHandler(db, cache, d),
		Product: handlers.NewProductHandler(db, cache, d),
		Stock: handlers.NewStockHandler(
			stockuc.NewRecordMovement(stockRepo, cache, d),
			stockuc.NewListHistory(stockRepo, cache),
			stockuc.NewReconcile(stockRepo),
		),
		Expense: handlers.NewExpenseHandler(db, cache, d),
		Finance: handlers.NewFinanceHandler(
			financeuc.NewGetSummary(financeRepo, cache),
			financeuc.NewGetDashboard(financeRepo, cache),
		),
		Staff:        handlers.NewStaffHandler(db, cache, d),
		WorkingHours: handlers.NewWorkingHoursHandler(db, cache, d),
		Integration: handlers.NewIntegrationHandler(db,
			webhook.NewClient(cfg.WebhookTimeout, cfg.WebhookAllowPrivateNetworks), webhook.NewLimiter(cfg.WebhookTestPerMinute), d),
		AuditLogs: handlers.NewAuditLogsHandler(auditLogger),
		Sessions:  middleware.NewSessionStore(db, cache),
	}

	return &testServer{t: t, engine: server.NewEngine(cfg, h), db: db, cfg: cfg}
}

func (s *testServer) token(p *models.Profile) string {
	s.t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            p.ID,
		"organizationId": p.OrganizationID,
		"role":           p.Role,
		"exp":            time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(s.cfg.JWTSecret))
	require.NoError(s.t, err)
	return signed
}

func (s *testServer) do(method, path string, as *models.Profile, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(as))
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ------------------------------------------------------
// AUTH
// ------------------------------------------------------

func TestRegister_FieldErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", nil, gin.H{
		"organization": gin.H{"name": "B", "slug": "Bad Slug"},
		"admin":        gin.H{"full_name": "A", "email": "nope", "password": "123"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "validation_failed", body["error_code"])

	fields := body["fields"].(map[string]any)
	for _, f := range []string{"organization.name", "organization.slug", "admin.full_name", "admin.email", "admin.password"} {
		assert.Contains(t, fields, f)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestServer(t)

	payload := gin.H{
		"organization": gin.H{"name": "Barbearia do Zé"},
		"admin":        gin.H{"full_name": "José Silva", "email": "Ze@Example.com", "password": "segredo1"},
	}

	w := s.do(http.MethodPost, "/api/auth/register", nil, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	org := body["organization"].(map[string]any)
	assert.Equal(t, "barbearia-do-ze", org["slug"])
	assert.Equal(t, "admin", body["profile"].(map[string]any)["role"])

	// same slug again
	payload["admin"] = gin.H{"full_name": "Outro", "email": "outro@example.com", "password": "segredo1"}
	w = s.do(http.MethodPost, "/api/auth/register", nil, payload)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug_already_exists", decode(t, w)["error_code"])

	w = s.do(http.MethodPost, "/api/auth/login", nil, gin.H{"email": "ze@example.com", "password": "segredo1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["token"])

	w = s.do(http.MethodPost, "/api/auth/login", nil, gin.H{"email": "ze@example.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])
}

func TestMe_ReportsAdminFlag(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")

	w := s.do(http.MethodGet, "/api/me", barber, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["is_admin"])
	assert.Equal(t, "Navalha", body["organization"].(map[string]any)["name"])
}

// ------------------------------------------------------
// AUTHORIZATION
// ------------------------------------------------------

func TestAdminRoutes_RejectBarbers(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")

	for _, path := range []string{"/api/finance/summary", "/api/expenses", "/api/integrations", "/api/audit-logs"} {
		w := s.do(http.MethodGet, path, barber, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, "access_restricted", decode(t, w)["error_code"], path)
	}

	w := s.do(http.MethodGet, "/api/finance/summary", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/finance/summary", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ------------------------------------------------------
// APPOINTMENTS
// ------------------------------------------------------

func TestCreateAppointment_IgnoresStatusAndDerivesFields(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")
	client := testutil.Client(t, s.db, org.ID, "Ana")
	service := testutil.Service(t, s.db, org.ID, "Corte", "45.00", 30)

	w := s.do(http.MethodPost, "/api/appointments", barber, gin.H{
		"client_id":  client.ID,
		"service_id": service.ID,
		"start_time": "2025-03-10T14:00",
		"status":     "completed",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ap models.Appointment
	require.NoError(t, s.db.First(&ap).Error)
	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, barber.ID, ap.BarberID)
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
	assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), ap.StartTime.UTC())

	w = s.do(http.MethodPatch, "/api/appointments/"+itoa(ap.ID)+"/status", barber, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_transition", decode(t, w)["error_code"])

	w = s.do(http.MethodPatch, "/api/appointments/"+itoa(ap.ID)+"/status", barber, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// ------------------------------------------------------
// STOCK
// ------------------------------------------------------

func TestStockMovements(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")
	product := testutil.Product(t, s.db, org.ID, "Pomada", 0)
	path := "/api/products/" + itoa(product.ID) + "/stock-movements"

	w := s.do(http.MethodPost, path, barber, gin.H{"movement_type": "in", "quantity": 5, "reason": "purchase"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(5), decode(t, w)["product"].(map[string]any)["stock_quantity"])

	w = s.do(http.MethodPost, path, barber, gin.H{"movement_type": "out", "quantity": 10, "reason": "sale"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "insufficient_stock", decode(t, w)["error_code"])

	w = s.do(http.MethodPost, path, barber, gin.H{"movement_type": "in", "quantity": 1, "reason": "loss"})
	assert.Equal(t, "invalid_reason", decode(t, w)["error_code"])

	w = s.do(http.MethodGet, "/api/stock-movements?product_id="+itoa(product.ID), barber, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	var p models.Product
	require.NoError(t, s.db.First(&p, product.ID).Error)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestProductUpdate_CannotTouchStock(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")
	product := testutil.Product(t, s.db, org.ID, "Pomada", 3)

	w := s.do(http.MethodPatch, "/api/products/"+itoa(product.ID), barber, gin.H{"name": "Pomada Matte", "stock_quantity": 99})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Pomada Matte", body["name"])
	assert.Equal(t, float64(3), body["stock_quantity"])

	w = s.do(http.MethodGet, "/api/products?low_stock=true", barber, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["total"])
}

// ------------------------------------------------------
// STAFF
// ------------------------------------------------------

func TestWorkingHours_BarberEditsOnlyOwn(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")
	other := testutil.Profile(t, s.db, org.ID, "Carlos", "barber")

	w := s.do(http.MethodPost, "/api/staff/"+itoa(barber.ID)+"/working-hours/monday/toggle", barber, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{"start": "09:00", "end": "18:00"}, decode(t, w)["monday"])

	w = s.do(http.MethodPatch, "/api/staff/"+itoa(barber.ID)+"/working-hours/monday", barber, gin.H{"start": "18:00", "end": "10:00"})
	assert.Equal(t, "invalid_working_hours", decode(t, w)["error_code"])

	w = s.do(http.MethodPost, "/api/staff/"+itoa(other.ID)+"/working-hours/monday/toggle", barber, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ------------------------------------------------------
// INTEGRATIONS
// ------------------------------------------------------

func TestWorkingHours_InvalidStoredMapIsReported(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")

	stored := datatypes.NewJSONType(models.WorkingHours{"funday": &models.DayHours{Start: "09:00", End: "18:00"}})
	require.NoError(t, s.db.Model(&models.Profile{}).Where("id = ?", barber.ID).Update("working_hours", stored).Error)

	w := s.do(http.MethodGet, "/api/staff/"+itoa(barber.ID)+"/working-hours", barber, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_weekday", decode(t, w)["error_code"])
}

func TestIntegrationWebhookTest(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")

	var received map[string]any
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer hook.Close()

	w := s.do(http.MethodPost, "/api/integrations/test", admin, nil)
	assert.Equal(t, "webhook_url_missing", decode(t, w)["error_code"])

	w = s.do(http.MethodPut, "/api/integrations", admin, gin.H{"webhook_url": hook.URL, "api_key": "k", "is_active": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/integrations/test", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["delivered"])
	assert.Equal(t, float64(500), body["status_code"])
	assert.Equal(t, "test", received["event"])

	// limiter allows two tests per minute per organization
	s.do(http.MethodPost, "/api/integrations/test", admin, nil)
	w = s.do(http.MethodPost, "/api/integrations/test", admin, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// ------------------------------------------------------
// ORGANIZATION & MEDIA
// ------------------------------------------------------

func TestOrganizationUpdate(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")

	w := s.do(http.MethodPatch, "/api/organization", admin, gin.H{"timezone": "Mars/Olympus"})
	assert.Equal(t, "invalid_timezone", decode(t, w)["error_code"])

	w = s.do(http.MethodPatch, "/api/organization", admin, gin.H{"timezone": "America/Manaus", "phone": "92999990000"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "America/Manaus", decode(t, w)["timezone"])
}

func TestUploads_DisabledWithoutBucket(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")

	w := s.do(http.MethodPost, "/api/me/avatar", admin, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "uploads_disabled", decode(t, w)["error_code"])
}

// ------------------------------------------------------
// EXPENSES
// ------------------------------------------------------

func TestExpenses_MarkPaid(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")

	w := s.do(http.MethodPost, "/api/expenses", admin, gin.H{"name": "Luz", "amount": "120.50", "due_date": "2025-03-10", "category": "cafe"})
	assert.Equal(t, "invalid_category", decode(t, w)["error_code"])

	w = s.do(http.MethodPost, "/api/expenses", admin, gin.H{"name": "Luz", "amount": "120.50", "due_date": "2025-03-10"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "outros", created["category"])
	assert.Equal(t, "pending", created["status"])

	id := uint(created["id"].(float64))
	w = s.do(http.MethodPatch, "/api/expenses/"+itoa(id)+"/pay", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode(t, w)
	assert.Equal(t, "paid", paid["status"])
	assert.NotNil(t, paid["paid_at"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ------------------------------------------------------
// CATALOGS
// ------------------------------------------------------

func TestClientDetail_ScopedByRoleAndTenant(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")
	bruno := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")
	carlos := testutil.Profile(t, s.db, org.ID, "Carlos", "barber")
	client := testutil.Client(t, s.db, org.ID, "Ana")
	service := testutil.Service(t, s.db, org.ID, "Corte", "45.00", 30)

	start := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	testutil.Appointment(t, s.db, org.ID, client.ID, service.ID, bruno.ID, start, 30, "scheduled", "45.00")
	testutil.Appointment(t, s.db, org.ID, client.ID, service.ID, carlos.ID, start.Add(time.Hour), 30, "scheduled", "45.00")

	path := "/api/clients/" + itoa(client.ID)

	w := s.do(http.MethodGet, path, bruno, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["appointments"], 1)

	w = s.do(http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["appointments"], 2)

	other := testutil.Organization(t, s.db, "Outra")
	outsider := testutil.Profile(t, s.db, other.ID, "Zé", "admin")
	w = s.do(http.MethodGet, path, outsider, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "client_not_found", decode(t, w)["error_code"])
}

func TestServices_SoftDelete(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")

	w := s.do(http.MethodPost, "/api/services", barber, gin.H{"name": "Barba", "price": "30.00", "duration_minutes": 20})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(decode(t, w)["id"].(float64))

	w = s.do(http.MethodGet, "/api/services?active=true", barber, nil)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = s.do(http.MethodDelete, "/api/services/"+itoa(id), barber, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/services?active=true", barber, nil)
	assert.Equal(t, float64(0), decode(t, w)["total"])

	var svc models.Service
	require.NoError(t, s.db.First(&svc, id).Error)
	assert.False(t, svc.IsActive)
}

// ------------------------------------------------------
// STAFF ADMINISTRATION
// ------------------------------------------------------

func TestStaff_CreateAndSelfProtection(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")

	newStaff := gin.H{"full_name": "Carlos Lima", "email": "carlos@example.com", "password": "segredo1"}

	w := s.do(http.MethodPost, "/api/staff", barber, newStaff)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/staff", admin, newStaff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "barber", decode(t, w)["role"])

	w = s.do(http.MethodPost, "/api/staff", admin, newStaff)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPatch, "/api/staff/"+itoa(admin.ID), admin, gin.H{"role": "barber"})
	assert.Equal(t, "invalid_role", decode(t, w)["error_code"])

	w = s.do(http.MethodPatch, "/api/staff/"+itoa(admin.ID), admin, gin.H{"is_active": false})
	assert.Equal(t, "cannot_deactivate_self", decode(t, w)["error_code"])

	w = s.do(http.MethodPatch, "/api/staff/"+itoa(barber.ID), admin, gin.H{"commission_rate": "40"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestIntegrationWebhookTest_KeyOnlyForStoredURL(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")

	keys := make(chan string, 2)
	receiver := func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("X-Api-Key")
	}
	stored := httptest.NewServer(http.HandlerFunc(receiver))
	defer stored.Close()
	other := httptest.NewServer(http.HandlerFunc(receiver))
	defer other.Close()

	w := s.do(http.MethodPut, "/api/integrations", admin, gin.H{"webhook_url": stored.URL, "api_key": "k", "is_active": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/integrations/test", admin, gin.H{"webhook_url": other.URL})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "", <-keys)

	w = s.do(http.MethodPost, "/api/integrations/test", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "k", <-keys)
}

func TestIntegrations_RefuseInternalTargets(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) { cfg.WebhookAllowPrivateNetworks = false })
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")

	w := s.do(http.MethodPut, "/api/integrations", admin, gin.H{"webhook_url": "http://169.254.169.254/latest/meta-data/", "is_active": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_webhook_url", decode(t, w)["error_code"])

	w = s.do(http.MethodPost, "/api/integrations/test", admin, gin.H{"webhook_url": "http://127.0.0.1:6379/"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_webhook_url", decode(t, w)["error_code"])
}

// ------------------------------------------------------
// SESSIONS
// ------------------------------------------------------

func TestSession_RoleChangeAppliesToIssuedTokens(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	owner := testutil.Profile(t, s.db, org.ID, "Dono", "admin")
	partner := testutil.Profile(t, s.db, org.ID, "Sócio", "admin")

	// signed while partner is still admin and replayed after the demotion
	token := s.token(partner)
	summary := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/finance/summary", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, summary())

	w := s.do(http.MethodPatch, "/api/staff/"+itoa(partner.ID), owner, gin.H{"role": "barber"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, http.StatusForbidden, summary())
}

func TestSession_DeactivatedStaffIsRejected(t *testing.T) {
	s := newTestServer(t)
	org := testutil.Organization(t, s.db, "Navalha")
	admin := testutil.Profile(t, s.db, org.ID, "Admin", "admin")
	barber := testutil.Profile(t, s.db, org.ID, "Bruno", "barber")

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/appointments", barber, nil).Code)

	w := s.do(http.MethodPatch, "/api/staff/"+itoa(barber.ID), admin, gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/appointments", barber, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account_inactive", decode(t, w)["error_code"])
}

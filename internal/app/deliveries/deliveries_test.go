package deliveries_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/injector"
	"github.com/safatanc/hotel-audit-core/internal/app/deliveries"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type allowAll struct{}

func (allowAll) Allow(ctx context.Context, key string, limit middlewares.Rate) (bool, middlewares.RateLimitInfo) {
	return true, middlewares.RateLimitInfo{Limit: limit.Requests, Remaining: limit.Requests, Reset: time.Now().Add(limit.Window)}
}

func (allowAll) Reset(ctx context.Context, key string) error { return nil }

type apiEnv struct {
	router  *fiber.App
	db      *gorm.DB
	auth    *services.AuthService
	admin   *models.User
	auditor *models.User
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := infrastructures.OpenDatabase("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, infrastructures.AutoMigrate(db))

	validator := infrastructures.NewValidator()
	userService := services.NewUserService(db, validator)
	authService := services.NewAuthService(userService, infrastructures.AuthConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: 30 * time.Minute,
	})
	propertyService := services.NewPropertyService(db, validator)
	auditService := services.NewAuditService(db, validator, services.NewAuditQueryBuilder(db))
	auditItemService := services.NewAuditItemService(db, validator)
	reportService := services.NewReportService(db)
	aiService := services.NewAIService(infrastructures.NewGeminiClient(infrastructures.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		BaseURL: "http://127.0.0.1:0",
	}), auditService, auditItemService)
	maintenanceService := services.NewMaintenanceService(db, nil)
	authMiddleware := middlewares.NewAuthMiddleware(authService)

	app := &injector.Application{
		HealthHandler:       deliveries.NewHealthHandler(),
		AuthHandler:         deliveries.NewAuthHandler(authService, authMiddleware, validator),
		UserHandler:         deliveries.NewUserHandler(userService, authMiddleware),
		PropertyHandler:     deliveries.NewPropertyHandler(propertyService, authMiddleware, validator),
		AuditHandler:        deliveries.NewAuditHandler(auditService, auditItemService, authMiddleware),
		AIHandler:           deliveries.NewAIHandler(aiService, validator),
		ReportHandler:       deliveries.NewReportHandler(reportService, auditItemService, userService, services.NewExportService(reportService)),
		MaintenanceHandler:  deliveries.NewMaintenanceHandler(maintenanceService, authMiddleware),
		AuthMiddleware:      authMiddleware,
		RateLimitMiddleware: middlewares.NewRateLimitMiddleware(allowAll{}),
		MaintenanceService:  maintenanceService,
	}

	router := fiber.New(fiber.Config{ErrorHandler: pkg.ErrorResponse})
	app.RegisterRoutes(router)

	ctx := context.Background()
	admin, err := userService.CreateUser(ctx, &models.UserCreateRequest{
		Username: "admin",
		Password: "admin123",
		Role:     models.UserRoleAdmin,
		Name:     "System Administrator",
		Email:    "admin@hotel-audit.com",
	})
	require.NoError(t, err)
	auditor, err := userService.CreateUser(ctx, &models.UserCreateRequest{
		Username: "sarah.johnson",
		Password: "auditor123",
		Role:     models.UserRoleAuditor,
		Name:     "Sarah Johnson",
		Email:    "sarah.johnson@hotel-audit.com",
	})
	require.NoError(t, err)

	return &apiEnv{router: router, db: db, auth: authService, admin: admin, auditor: auditor}
}

func (env *apiEnv) do(t *testing.T, method, path string, user *models.User, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if user != nil {
		token, err := env.auth.IssueToken(user)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := env.router.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) models.WebResponse[T] {
	t.Helper()
	var body models.WebResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	env := setupAPI(t)

	resp := env.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hotel-audit-core", decode[string](t, resp).Data)
}

func TestAuth_Login(t *testing.T) {
	env := setupAPI(t)

	form := func(path string, values url.Values) *http.Response {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := env.router.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("form login then me", func(t *testing.T) {
		resp := form("/api/auth/login", url.Values{"username": {"sarah.johnson"}, "password": {"auditor123"}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		token := decode[models.Token](t, resp).Data
		assert.Equal(t, "bearer", token.TokenType)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token.AccessToken)
		me, err := env.router.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, me.StatusCode)
		assert.Equal(t, "sarah.johnson", decode[models.User](t, me).Data.Username)
	})

	t.Run("form login missing fields", func(t *testing.T) {
		resp := form("/api/auth/login", url.Values{"username": {"sarah.johnson"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("json login wrong password", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login-json", nil, models.LoginRequest{Username: "sarah.johnson", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
		assert.Equal(t, "Incorrect username or password", decode[any](t, resp).Message)
	})

	t.Run("flexible login accepts form", func(t *testing.T) {
		resp := form("/api/auth/login-flexible", url.Values{"username": {"admin"}, "password": {"admin123"}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("flexible login accepts json", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login-flexible", nil, models.LoginRequest{Username: "admin", Password: "admin123"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("flexible login without credentials", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login-flexible", nil, map[string]string{})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Username and password are required", decode[any](t, resp).Message)
	})

	t.Run("flexible login with garbage body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login-flexible", strings.NewReader("{not json"))
		resp, err := env.router.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := setupAPI(t)

	for _, path := range []string{"/api/users", "/api/properties", "/api/audits", "/api/reports/dashboard", "/api/maintenance/cleanup"} {
		resp := env.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestProperties(t *testing.T) {
	env := setupAPI(t)

	req := models.PropertyCreateRequest{Name: "Taj Palace", Location: "New Delhi", Region: "North"}

	resp := env.do(t, http.MethodPost, "/api/properties", env.auditor, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/properties", env.admin, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Property](t, resp).Data
	assert.NotZero(t, created.ID)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", created.ID), env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Taj Palace", decode[models.Property](t, resp).Data.Name)

	resp = env.do(t, http.MethodGet, "/api/properties/abc", env.auditor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/properties/999", env.auditor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/properties/regions/North", env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Property](t, resp).Data, 1)

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/properties/%d/status", created.ID), env.admin, map[string]int{"score": 72})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ComplianceZoneAmber, decode[models.Property](t, resp).Data.Status)
}

func TestAudits(t *testing.T) {
	env := setupAPI(t)

	property := &models.Property{Name: "Taj Palace", Location: "New Delhi", Region: "North", Status: models.ComplianceZoneGreen}
	require.NoError(t, env.db.Create(property).Error)

	resp := env.do(t, http.MethodPost, "/api/audits", env.admin, models.AuditCreateRequest{
		PropertyID: property.ID,
		AuditorID:  &env.auditor.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	audit := decode[models.Audit](t, resp).Data
	assert.Equal(t, models.AuditStatusScheduled, audit.Status)

	resp = env.do(t, http.MethodPost, "/api/audits", env.auditor, models.AuditCreateRequest{PropertyID: property.ID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/audits/%d/items/bulk", audit.ID), env.auditor, models.AuditItemBulkCreateRequest{
		Items: []models.AuditItemCreateRequest{
			{Section: "Lobby", ItemName: "Signage"},
			{Section: "Room", ItemName: "Bed linen"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, decode[[]models.AuditItem](t, resp).Data, 2)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/audits?status=scheduled&property_ids=%d", property.ID), env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[models.Pagination[[]models.Audit]](t, resp).Data
	assert.Equal(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, audit.ID, page.Items[0].ID)

	resp = env.do(t, http.MethodGet, "/api/audits?status=completed", env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[models.Pagination[[]models.Audit]](t, resp).Data.TotalItems)

	for _, query := range []string{"status=bogus", "compliance_zones=purple", "date_from=yesterday", "score_min=high", "property_ids=1,x"} {
		resp = env.do(t, http.MethodGet, "/api/audits?"+query, env.auditor, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/audits/auditor/%d", env.auditor.ID), env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Audit](t, resp).Data, 1)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/audits/%d", audit.ID), env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[models.Audit](t, resp).Data.Items, 2)
}

func TestMaintenance(t *testing.T) {
	env := setupAPI(t)

	resp := env.do(t, http.MethodPost, "/api/maintenance/cleanup", env.auditor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/maintenance/cleanup?days=0", env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/maintenance/cleanup?days=30", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.CleanupResult{}, decode[models.CleanupResult](t, resp).Data)

	resp = env.do(t, http.MethodPost, "/api/maintenance/reschedule", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), decode[models.ScheduleSweepResult](t, resp).Data.UpdatedProperties)
}

func TestReports(t *testing.T) {
	env := setupAPI(t)

	resp := env.do(t, http.MethodGet, "/api/reports/dashboard", env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), decode[models.ComplianceDashboard](t, resp).Data.TotalProperties)

	resp = env.do(t, http.MethodGet, "/api/reports/risk-assessment/export", env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.XLSXContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment; filename=risk-assessment-")

	resp = env.do(t, http.MethodGet, "/api/reports/user-statistics", env.auditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.UserStatistics](t, resp).Data, 2)
}

func TestAI(t *testing.T) {
	env := setupAPI(t)

	resp := env.do(t, http.MethodGet, "/api/ai/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[models.AIHealth](t, resp).Data
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "gemini-1.5-flash", health.Model)

	resp = env.do(t, http.MethodPost, "/api/ai/suggest-score", nil, models.ScoreSuggestionRequest{AuditItemID: 1, Observations: "faded sign"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/ai/suggest-score", env.auditor, map[string]any{"audit_item_id": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/ai/generate-report", env.auditor, models.ReportGenerationRequest{AuditID: 42})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

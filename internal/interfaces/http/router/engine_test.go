package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	billingapp "github.com/easybill/backend/internal/application/billing"
	customerapp "github.com/easybill/backend/internal/application/customer"
	"github.com/easybill/backend/internal/application/identity"
	"github.com/easybill/backend/internal/application/statement"
	"github.com/easybill/backend/internal/infrastructure/auth"
	"github.com/easybill/backend/internal/infrastructure/cache"
	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/easybill/backend/internal/infrastructure/persistence"
	"github.com/easybill/backend/internal/infrastructure/printing"
	"github.com/easybill/backend/internal/infrastructure/storage"
	"github.com/easybill/backend/internal/interfaces/http/handler"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	middleware.SetupValidator()
}

type stubPDF struct{}

func (stubPDF) Render(_ context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	return &printing.RenderResult{PDFData: []byte("%PDF-1.4 " + req.Title), PageCount: 1}, nil
}

func (stubPDF) Close() error { return nil }

type testServer struct {
	t       *testing.T
	engine  *Engine
	archive *storage.MemoryArchive
	faker   *gofakeit.Faker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := persistence.NewDatabaseWithCustomLogger(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
	}, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)

	summaries := cache.NewInMemorySummaryCache(time.Minute)
	t.Cleanup(func() { _ = summaries.Close() })
	archive := storage.NewMemoryArchive()

	renderer, err := printing.NewInvoiceRenderer(stubPDF{}, 5*time.Second)
	require.NoError(t, err)

	authService := identity.NewAuthService(accountRepo, auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-key-with-32-chars!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "easybill-test",
	}))
	billService := billingapp.NewBillService(billRepo, customerRepo, accountRepo, renderer,
		billingapp.WithSummaryCache(summaries),
		billingapp.WithDocumentArchive(archive),
	)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			MaxBodySize:      1 << 20,
			CORSAllowOrigins: []string{"*"},
		},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Swagger:   config.SwaggerConfig{Enabled: true},
		Telemetry: config.TelemetryConfig{ServiceName: "easybill-test"},
	}

	engine := NewEngine(EngineOptions{
		Config:    cfg,
		Validator: authService,
		Registry:  prometheus.NewRegistry(),
		Handlers: Handlers{
			Auth:      handler.NewAuthHandler(authService),
			Customer:  handler.NewCustomerHandler(customerapp.NewCustomerService(customerRepo, billRepo)),
			Bill:      handler.NewBillHandler(billService),
			Statement: handler.NewStatementHandler(statement.NewStatementService(billRepo, summaries)),
			Health:    handler.NewHealthHandler(db),
		},
	})
	t.Cleanup(engine.Close)

	return &testServer{t: t, engine: engine, archive: archive, faker: gofakeit.New(42)}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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

func (s *testServer) register(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"companyName": s.faker.Company(),
		"gstin":       "29ABCDE1234F1Z5",
		"email":       email,
		"password":    "secret123",
		"address":     s.faker.Street(),
		"pincode":     560001,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(s.t, w)["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func (s *testServer) createCustomer(token string) map[string]any {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/customers", token, map[string]any{
		"name":      s.faker.Company(),
		"address":   s.faker.Street(),
		"phone":     s.faker.Phone(),
		"gstNumber": "29AAACB1234C1Z5",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)
}

func (s *testServer) createBill(token, customerID, number string) map[string]any {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/bills", token, map[string]any{
		"billNumber": number,
		"customerId": customerID,
		"date":       "2024-02-10",
		"items": []map[string]any{
			{"description": "Consulting", "rate": 100, "quantity": 2},
		},
		"gstRate": 18,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)
}

func TestEngine_Health(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		body := decode(t, w)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "connected", body["database"])
		assert.NotEmpty(t, body["time"])
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestEngine_AuthGate(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized", decode(t, w)["message"])
		})
	}
}

func TestEngine_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	s.register("owner@example.com")

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"companyName": "Other Co",
		"email":       "owner@example.com",
		"password":    "secret123",
		"address":     "2 Side Street",
		"pincode":     560002,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE_KEY", decode(t, w)["code"])

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "owner@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "owner@example.com", user["email"])
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, w)["code"])

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode(t, w)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
	assert.NotEmpty(t, errBody["errors"])
}

func TestEngine_BillLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.register("billing@example.com")

	cust := s.createCustomer(token)
	customerID := cust["id"].(string)

	bill := s.createBill(token, customerID, "INV-001")
	billID := bill["id"].(string)
	totals := bill["totals"].(map[string]any)
	assert.Equal(t, 200.0, totals["subtotal"])
	assert.Equal(t, 36.0, totals["gst"])
	assert.Equal(t, 236.0, totals["total"])
	assert.Equal(t, "Pending", bill["paymentStatus"])
	assert.Equal(t, cust["name"], bill["customer"].(map[string]any)["name"])

	t.Run("duplicate bill number", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/bills", token, map[string]any{
			"billNumber": "INV-001",
			"customerId": customerID,
			"items":      []map[string]any{{"description": "x", "rate": 1, "quantity": 1}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "DUPLICATE_KEY", decode(t, w)["code"])
	})

	t.Run("unknown or malformed customer", func(t *testing.T) {
		for _, id := range []string{"0b9f6f0e-2f9b-4d0a-9a43-7f3f5f0f0f0f", "nope"} {
			w := s.do(http.MethodPost, "/api/bills", token, map[string]any{
				"billNumber": "INV-404",
				"customerId": id,
				"items":      []map[string]any{{"description": "x", "rate": 1, "quantity": 1}},
			})
			assert.Equal(t, http.StatusBadRequest, w.Code, id)
			assert.Equal(t, "INVALID_REFERENCE", decode(t, w)["code"], id)
		}
	})

	t.Run("validation errors list fields", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/bills", token, map[string]any{
			"billNumber": "INV-002",
			"customerId": customerID,
			"items":      []map[string]any{{"description": "", "rate": -1, "quantity": 0}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
		assert.Len(t, body["errors"], 3)
	})

	t.Run("list and search", func(t *testing.T) {
		s.createBill(token, customerID, "INV-100")

		w := s.do(http.MethodGet, "/api/bills?q=INV-1&limit=1", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, 1.0, body["total"])
		assert.Equal(t, 1.0, body["pages"])
		assert.Equal(t, "INV-100", body["items"].([]any)[0].(map[string]any)["billNumber"])

		w = s.do(http.MethodGet, "/api/bills?page=abc&limit=-3", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body = decode(t, w)
		assert.Equal(t, 1.0, body["page"])
		assert.Equal(t, 2.0, body["total"])
	})

	t.Run("update replaces items", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/bills/"+billID, token, map[string]any{
			"items": []map[string]any{{"description": "Audit", "rate": 1000, "quantity": 3}},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		totals := decode(t, w)["totals"].(map[string]any)
		assert.Equal(t, 3540.0, totals["total"])
	})

	t.Run("payment status", func(t *testing.T) {
		w := s.do(http.MethodPatch, "/api/bills/"+billID+"/payment", token, map[string]any{"status": "Unknown"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(http.MethodPatch, "/api/bills/"+billID+"/payment", token, map[string]any{"status": "Paid", "method": "UPI"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Paid", body["paymentStatus"])
		assert.Equal(t, "UPI", body["paymentMethod"])
	})

	t.Run("customer statement", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/customers/"+customerID+"/statement", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Len(t, body["bills"], 2)
		assert.Equal(t, 236.0, body["outstanding"])
	})

	t.Run("monthly summaries", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/statements/monthly", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].([]any)
		require.Len(t, data, 1)
		feb := data[0].(map[string]any)
		assert.Equal(t, "2024-02", feb["month"])
		assert.Equal(t, 2.0, feb["count"])
		assert.Equal(t, 3776.0, feb["revenue"])
	})

	t.Run("pdf", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/bills/"+billID+"/pdf", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="INV-001.pdf"`, w.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
		assert.Equal(t, 1, s.archive.Len())
	})

	t.Run("deleting the customer keeps its name on bills", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/customers/"+customerID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())

		w = s.do(http.MethodGet, "/api/bills/"+billID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Nil(t, body["customerId"])
		c := body["customer"].(map[string]any)
		assert.Nil(t, c["id"])
		assert.Equal(t, true, c["deleted"])
		assert.Equal(t, cust["name"], c["name"])
	})

	t.Run("delete bill", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/bills/"+billID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do(http.MethodGet, "/api/bills/"+billID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
		assert.Equal(t, 0, s.archive.Len())
	})
}

func TestEngine_TenantIsolation(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("owner@example.com")
	intruder := s.register("intruder@example.com")

	cust := s.createCustomer(owner)
	bill := s.createBill(owner, cust["id"].(string), "INV-001")

	paths := []string{
		"/api/bills/" + bill["id"].(string),
		"/api/customers/" + cust["id"].(string),
		"/api/customers/" + cust["id"].(string) + "/statement",
	}
	for _, p := range paths {
		w := s.do(http.MethodGet, p, intruder, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, p)
	}

	w := s.do(http.MethodGet, "/api/bills", intruder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode(t, w)["total"])

	// Another account may reuse the bill number
	intruderCustomer := s.createCustomer(intruder)
	s.createBill(intruder, intruderCustomer["id"].(string), "INV-001")

	// and cannot reference a foreign customer
	w = s.do(http.MethodPost, "/api/bills", intruder, map[string]any{
		"billNumber": "INV-002",
		"customerId": cust["id"],
		"items":      []map[string]any{{"description": "x", "rate": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REFERENCE", decode(t, w)["code"])
}

func TestEngine_MalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.register("ids@example.com")

	for _, p := range []string{"/api/bills/123", "/api/customers/abc", "/api/bills/xyz/pdf"} {
		w := s.do(http.MethodGet, p, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, p)
	}
}

func TestEngine_CustomerPagination(t *testing.T) {
	s := newTestServer(t)
	token := s.register("pages@example.com")

	for i := 0; i < 12; i++ {
		s.createCustomer(token)
	}

	w := s.do(http.MethodGet, "/api/customers?page=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 12.0, body["total"])
	assert.Equal(t, 2.0, body["page"])
	assert.Equal(t, 2.0, body["pages"])
	assert.Len(t, body["items"], 2)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/customers?limit=%d", 1000), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 12)
}

func TestEngine_MalformedBody(t *testing.T) {
	s := newTestServer(t)
	token := s.register("body@example.com")

	w := s.do(http.MethodPost, "/api/customers", token, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, w)["code"])
}

func TestEngine_MetricsAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/health", "", nil)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "easybill_http_server_requests_total")

	w = s.do(http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
}

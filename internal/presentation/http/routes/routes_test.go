package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/config"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/infrastructure/database"
	"github.com/sangkips/catering-api/internal/infrastructure/repository"
	"github.com/sangkips/catering-api/internal/presentation/http/handler"
	"github.com/sangkips/catering-api/internal/presentation/http/routes"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/sangkips/catering-api/pkg/email"
	"github.com/sangkips/catering-api/pkg/metrics"
	"github.com/sangkips/catering-api/pkg/paylink"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []email.Message
}

func (f *fakeMailer) Configured() bool { return true }

func (f *fakeMailer) Send(_ context.Context, msg email.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	f.sent = append(f.sent, msg)
	return "fake", nil
}

type server struct {
	router *gin.Engine
	mailer *fakeMailer
	db     *gorm.DB
}

func newServer(t *testing.T, rateLimit int) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:http_"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	require.NoError(t, database.SeedDefaultData(db))

	cfg := &config.Config{
		App:       config.AppConfig{Name: "catering-api", Env: "test"},
		RateLimit: config.RateLimitConfig{Requests: rateLimit, Duration: 60},
		Business:  config.BusinessConfig{Name: "Smoke & Oak Catering"},
	}

	links, err := paylink.NewBuilder("")
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	m := metrics.New("catering", registry)
	mailer := &fakeMailer{}

	templates := repository.NewEmailTemplateRepository(db)
	taxRates := repository.NewCatalogRepository[entity.TaxRate](db)
	gratuityRules := repository.NewCatalogRepository[entity.GratuityRule](db)

	settings := service.NewSettingsService(repository.NewSettingsRepository(db), cfg.Business)
	emails := service.NewEmailService(templates, repository.NewEmailLogRepository(db), mailer, m, 0)
	quotes := service.NewQuoteService(repository.NewQuoteRepository(db), taxRates, gratuityRules, settings, emails, links, m)
	quoteConfig := service.NewQuoteConfigService(
		repository.NewCatalogRepository[entity.QuotePackage](db),
		repository.NewCatalogRepository[entity.QuoteItemPreset](db),
		repository.NewCatalogRepository[entity.LaborRate](db),
		taxRates,
		gratuityRules,
	)

	router := routes.Setup(&routes.Handlers{
		Quote:          handler.NewQuoteHandler(quotes),
		QuoteConfig:    handler.NewQuoteConfigHandler(quoteConfig),
		Menu:           handler.NewMenuHandler(service.NewMenuService(repository.NewMenuItemRepository(db))),
		JobApplication: handler.NewJobApplicationHandler(service.NewJobApplicationService(repository.NewJobApplicationRepository(db), templates, settings, emails)),
		Email:          handler.NewEmailHandler(emails),
		Settings:       handler.NewSettingsHandler(settings),
	}, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Metrics:         m,
		Gatherer:        registry,
	})

	return &server{router: router, mailer: mailer, db: db}
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

func (s *server) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

type quoteJSON struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	Items         []struct {
		Category string `json:"category"`
	} `json:"items"`
}

func cateringQuote() map[string]interface{} {
	return map[string]interface{}{
		"customer_name":  "Dana Reyes",
		"customer_email": "dana@example.com",
		"event_date":     "2026-11-14",
		"guest_count":    10,
		"tax_rate":       "8.5",
		"gratuity_rate":  "0",
		"packages": []map[string]interface{}{
			{"id": "buffet", "name": "Buffet", "price": "18", "quantity": 10, "taxable": true},
		},
		"items": []map[string]interface{}{
			{"id": "tent", "category": "equipment", "description": "Tent rental", "unit_price": 500},
		},
	}
}

func TestHealthAndRequestID(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = s.do(t, http.MethodGet, "/api/v1/settings", nil, "X-Request-ID", "req-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	var body struct {
		Meta struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-123", body.Meta.RequestID)
}

func TestQuotePreviewEndpoint(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/quotes/preview", cateringQuote())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var preview struct {
		Formatted struct {
			Total   string `json:"total"`
			Deposit string `json:"deposit"`
		} `json:"formatted"`
	}
	decode(t, rec, &preview)
	assert.Equal(t, "$695.30", preview.Formatted.Total)
	assert.Equal(t, "$347.65", preview.Formatted.Deposit)
}

func TestQuoteLifecycle(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", cateringQuote(), "Idempotency-Key", "create-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created quoteJSON
	decode(t, rec, &created)
	assert.Equal(t, "QT-000001", created.Reference)
	assert.Equal(t, "Draft", created.Status)
	requireDecimal(t, "680", created.Subtotal, "subtotal")
	requireDecimal(t, "15.30", created.TaxAmount, "tax")
	requireDecimal(t, "695.30", created.TotalAmount, "total")
	requireDecimal(t, "347.65", created.DepositAmount, "deposit")
	require.Len(t, created.Items, 2)

	replay := s.do(t, http.MethodPost, "/api/v1/quotes", cateringQuote(), "Idempotency-Key", "create-1")
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	var replayed quoteJSON
	decode(t, replay, &replayed)
	assert.Equal(t, created.ID, replayed.ID)

	rec = s.do(t, http.MethodGet, "/api/v1/quotes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/quotes/"+created.ID+"/payments", map[string]interface{}{
		"amount": "347.65",
		"method": "card",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var paid quoteJSON
	decode(t, rec, &paid)
	requireDecimal(t, "347.65", paid.BalanceDue, "balance")

	rec = s.do(t, http.MethodGet, "/api/v1/quotes/"+created.ID+"/pdf?download=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="QT-000001.pdf"`)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = s.do(t, http.MethodPost, "/api/v1/quotes/"+created.ID+"/send", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, s.mailer.sent, 1)
	assert.Equal(t, []string{"dana@example.com"}, s.mailer.sent[0].To)

	var sent struct {
		Quote quoteJSON `json:"quote"`
	}
	decode(t, rec, &sent)
	assert.Equal(t, "Sent", sent.Quote.Status)

	rec = s.do(t, http.MethodPatch, "/api/v1/quotes/"+created.ID+"/status", map[string]string{"status": "Accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/quotes?status=Accepted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []quoteJSON `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Pagination.Total)

	rec = s.do(t, http.MethodDelete, "/api/v1/quotes/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/quotes/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdempotencyKeyReuseWithDifferentBody(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", cateringQuote(), "Idempotency-Key", "k")
	require.Equal(t, http.StatusCreated, rec.Code)

	other := cateringQuote()
	other["customer_name"] = "Someone Else"
	rec = s.do(t, http.MethodPost, "/api/v1/quotes", other, "Idempotency-Key", "k")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestQuoteValidationErrors(t *testing.T) {
	s := newServer(t, 100)

	body := cateringQuote()
	body["items"] = []map[string]interface{}{{"category": "beverage", "unit_price": "-5"}}
	rec := s.do(t, http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	env := decode(t, rec, nil)
	fields := make([]string, 0, len(env.Errors))
	for _, f := range env.Errors {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"items[0].unit_price", "items[0].category"}, fields)

	rec = s.do(t, http.MethodGet, "/api/v1/quotes/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/quotes", map[string]interface{}{"event_date": "14/11/2026"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/quotes?status=Lost", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteConfigEndpoints(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/quote-config/packages", map[string]interface{}{
		"name":             "Taco bar",
		"price_per_person": "18",
		"min_guests":       20,
		"taxable":          true,
		"is_active":        true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var pkg struct {
		ID string `json:"id"`
	}
	decode(t, rec, &pkg)

	rec = s.do(t, http.MethodPut, "/api/v1/quote-config/packages/"+pkg.ID, map[string]interface{}{
		"name":             "Taco bar",
		"price_per_person": "19.50",
		"is_active":        false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/quote-config/all?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all struct {
		Packages      []json.RawMessage `json:"packages"`
		TaxRates      []json.RawMessage `json:"tax_rates"`
		GratuityRules []json.RawMessage `json:"gratuity_rules"`
	}
	decode(t, rec, &all)
	assert.Empty(t, all.Packages)
	assert.Len(t, all.TaxRates, 1)
	assert.Len(t, all.GratuityRules, 1)

	rec = s.do(t, http.MethodPost, "/api/v1/quote-config/tax-rates", map[string]interface{}{"name": "", "rate": "150"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/quote-config/packages/"+pkg.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMenuEndpoints(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/menu-items", map[string]interface{}{
		"name":         "Brisket",
		"category":     "Mains",
		"price":        "16",
		"dietary_tags": []string{" GF ", ""},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item struct {
		ID          string   `json:"id"`
		DietaryTags []string `json:"dietary_tags"`
		IsAvailable bool     `json:"is_available"`
	}
	decode(t, rec, &item)
	assert.Equal(t, []string{"gf"}, item.DietaryTags)
	assert.True(t, item.IsAvailable)

	rec = s.do(t, http.MethodGet, "/api/v1/menu-items?category=Mains&available=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []json.RawMessage
	decode(t, rec, &items)
	assert.Len(t, items, 1)

	rec = s.do(t, http.MethodDelete, "/api/v1/menu-items/"+item.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCareersFlow(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/careers/apply", map[string]interface{}{
		"first_name": "Sam",
		"last_name":  "Lee",
		"email":      "sam@example.com",
		"position":   "Line cook",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, s.mailer.sent, 1)
	assert.Equal(t, "We received your application", s.mailer.sent[0].Subject)

	var application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &application)
	assert.Equal(t, "New", application.Status)

	rec = s.do(t, http.MethodPatch, "/api/v1/job-applications/"+application.ID+"/status", map[string]string{"status": "Reviewing"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &application)
	assert.Equal(t, "Reviewing", application.Status)

	rec = s.do(t, http.MethodPatch, "/api/v1/job-applications/"+application.ID+"/notes", map[string]string{"notes": "Strong grill experience"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/job-applications?status=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, rec, &page)
	assert.Len(t, page.Items, 1)

	rec = s.do(t, http.MethodPost, "/api/v1/careers/apply", map[string]interface{}{"first_name": "Sam"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailTemplateEndpoints(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodPost, "/api/v1/email-templates", map[string]interface{}{
		"slug":    "Tasting-Invite",
		"name":    "Tasting invite",
		"subject": "Tasting for {{.Name}}",
		"body":    "<p>Hi {{.Name}}</p>",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var template struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	decode(t, rec, &template)
	assert.Equal(t, "tasting-invite", template.Slug)

	rec = s.do(t, http.MethodPost, "/api/v1/email-templates/"+template.ID+"/preview", map[string]interface{}{
		"data": map[string]string{"Name": "Dana"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rendered struct {
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}
	decode(t, rec, &rendered)
	assert.Equal(t, "Tasting for Dana", rendered.Subject)
	assert.Equal(t, "<p>Hi Dana</p>", rendered.HTML)

	rec = s.do(t, http.MethodPost, "/api/v1/email-templates/"+template.ID+"/send", map[string]interface{}{
		"to":   "dana@example.com",
		"data": map[string]string{"Name": "Dana"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/email-templates", map[string]interface{}{
		"slug":    "tasting-invite",
		"name":    "Duplicate",
		"subject": "Hello",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/email-logs?limit=1&recipient=dana@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var logs struct {
		Items []struct {
			Status   string `json:"status"`
			Provider string `json:"provider"`
		} `json:"items"`
		Pagination struct {
			HasNext bool `json:"has_next"`
		} `json:"pagination"`
	}
	decode(t, rec, &logs)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "sent", logs.Items[0].Status)
	assert.Equal(t, "fake", logs.Items[0].Provider)
	assert.False(t, logs.Pagination.HasNext)

	rec = s.do(t, http.MethodGet, "/api/v1/email-logs?cursor=garbage", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	s := newServer(t, 100)

	rec := s.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings struct {
		BusinessName       string          `json:"business_name"`
		DefaultDepositRate decimal.Decimal `json:"default_deposit_rate"`
	}
	decode(t, rec, &settings)
	assert.Equal(t, "Smoke & Oak Catering", settings.BusinessName)
	requireDecimal(t, "50", settings.DefaultDepositRate, "default_deposit_rate")

	rec = s.do(t, http.MethodPut, "/api/v1/settings", map[string]interface{}{
		"business_name":        "Smoke & Oak",
		"default_tax_rate":     "7.25",
		"default_deposit_rate": "120",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/settings", map[string]interface{}{
		"business_name":        "Smoke & Oak",
		"default_tax_rate":     "7.25",
		"default_deposit_rate": "30",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &settings)
	assert.Equal(t, "Smoke & Oak", settings.BusinessName)
}

func TestRateLimitPerClient(t *testing.T) {
	s := newServer(t, 2)

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodGet, "/api/v1/settings", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	// Health sits outside the API group.
	rec = s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, 100)

	s.do(t, http.MethodGet, "/api/v1/settings", nil)

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catering_http_requests_total{method="GET",route="/api/v1/settings",status="200"} 1`)
}

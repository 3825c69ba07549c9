package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/config"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/infrastructure/database"
	"github.com/sangkips/catering-api/internal/infrastructure/repository"
	"github.com/sangkips/catering-api/pkg/apperror"
	"github.com/sangkips/catering-api/pkg/email"
	"github.com/sangkips/catering-api/pkg/metrics"
	"github.com/sangkips/catering-api/pkg/paylink"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	configured bool
	err        error
	sent       []email.Message
}

func (f *fakeMailer) Configured() bool { return f.configured }

func (f *fakeMailer) Send(_ context.Context, msg email.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "fake", nil
}

type testEnv struct {
	db           *gorm.DB
	mailer       *fakeMailer
	settings     *service.SettingsService
	emails       *service.EmailService
	quotes       *service.QuoteService
	quoteConfig  *service.QuoteConfigService
	menu         *service.MenuService
	applications *service.JobApplicationService
}

type envOption func(*envConfig)

type envConfig struct {
	paylink string
	metrics *metrics.Metrics
}

func withPaymentLink(base string) envOption {
	return func(c *envConfig) { c.paylink = base }
}

func withMetrics(m *metrics.Metrics) envOption {
	return func(c *envConfig) { c.metrics = m }
}

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	var cfg envConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:svc_"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	require.NoError(t, database.SeedDefaultData(db))

	links, err := paylink.NewBuilder(cfg.paylink)
	require.NoError(t, err)

	mailer := &fakeMailer{configured: true}
	templates := repository.NewEmailTemplateRepository(db)
	taxRates := repository.NewCatalogRepository[entity.TaxRate](db)
	gratuityRules := repository.NewCatalogRepository[entity.GratuityRule](db)

	settings := service.NewSettingsService(repository.NewSettingsRepository(db), config.BusinessConfig{
		Name:    "Smoke & Oak Catering",
		Email:   "hello@smokeandoak.test",
		Phone:   "555-0100",
		Address: "12 Market St",
	})
	emails := service.NewEmailService(templates, repository.NewEmailLogRepository(db), mailer, cfg.metrics, 0)

	return &testEnv{
		db:       db,
		mailer:   mailer,
		settings: settings,
		emails:   emails,
		quotes: service.NewQuoteService(
			repository.NewQuoteRepository(db), taxRates, gratuityRules,
			settings, emails, links, cfg.metrics,
		),
		quoteConfig: service.NewQuoteConfigService(
			repository.NewCatalogRepository[entity.QuotePackage](db),
			repository.NewCatalogRepository[entity.QuoteItemPreset](db),
			repository.NewCatalogRepository[entity.LaborRate](db),
			taxRates,
			gratuityRules,
		),
		menu:         service.NewMenuService(repository.NewMenuItemRepository(db)),
		applications: service.NewJobApplicationService(repository.NewJobApplicationRepository(db), templates, settings, emails),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int { return &v }

func requireDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func fieldNames(appErr *apperror.AppError) []string {
	names := make([]string, 0, len(appErr.Errors))
	for _, f := range appErr.Errors {
		names = append(names, f.Field)
	}
	return names
}

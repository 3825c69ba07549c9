package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sangkips/catering-api/internal/application/service"
	"github.com/sangkips/catering-api/internal/config"
	"github.com/sangkips/catering-api/internal/domain/entity"
	"github.com/sangkips/catering-api/internal/infrastructure/database"
	"github.com/sangkips/catering-api/internal/infrastructure/repository"
	"github.com/sangkips/catering-api/internal/presentation/http/handler"
	"github.com/sangkips/catering-api/internal/presentation/http/routes"
	"github.com/sangkips/catering-api/pkg/logger"
	"github.com/sangkips/catering-api/pkg/metrics"
	"github.com/sangkips/catering-api/pkg/paylink"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.EnvFileErr != nil {
		zlog.Info("no .env file loaded, using environment only", zap.Error(cfg.EnvFileErr))
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			zlog.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	if err := database.SeedDefaultData(db); err != nil {
		zlog.Warn("failed to seed default data", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("catering", registry)

	paylinks, err := paylink.NewBuilder(cfg.Payments.StripePaymentLink)
	if err != nil {
		zlog.Fatal("invalid STRIPE_PAYMENT_LINK", zap.Error(err))
	}

	mailChain := buildMailChain(&cfg.Mail, zlog)
	if !mailChain.Configured() {
		zlog.Warn("no mail provider configured, email delivery disabled")
	} else {
		zlog.Info("mail providers configured", zap.Strings("providers", mailChain.Providers()))
	}

	// Repositories
	quoteRepo := repository.NewQuoteRepository(db)
	packageRepo := repository.NewCatalogRepository[entity.QuotePackage](db)
	itemPresetRepo := repository.NewCatalogRepository[entity.QuoteItemPreset](db)
	laborRepo := repository.NewCatalogRepository[entity.LaborRate](db)
	taxRateRepo := repository.NewCatalogRepository[entity.TaxRate](db)
	gratuityRepo := repository.NewCatalogRepository[entity.GratuityRule](db)
	menuRepo := repository.NewMenuItemRepository(db)
	applicationRepo := repository.NewJobApplicationRepository(db)
	templateRepo := repository.NewEmailTemplateRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	settingsService := service.NewSettingsService(settingsRepo, cfg.Business)
	emailService := service.NewEmailService(templateRepo, emailLogRepo, mailChain, m, cfg.Mail.Timeout)
	quoteService := service.NewQuoteService(quoteRepo, taxRateRepo, gratuityRepo, settingsService, emailService, paylinks, m)
	quoteConfigService := service.NewQuoteConfigService(packageRepo, itemPresetRepo, laborRepo, taxRateRepo, gratuityRepo)
	menuService := service.NewMenuService(menuRepo)
	applicationService := service.NewJobApplicationService(applicationRepo, templateRepo, settingsService, emailService)

	handlers := &routes.Handlers{
		Quote:          handler.NewQuoteHandler(quoteService),
		QuoteConfig:    handler.NewQuoteConfigHandler(quoteConfigService),
		Menu:           handler.NewMenuHandler(menuService),
		JobApplication: handler.NewJobApplicationHandler(applicationService),
		Email:          handler.NewEmailHandler(emailService),
		Settings:       handler.NewSettingsHandler(settingsService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         m,
		Gatherer:        registry,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, time.Hour)

	go func() {
		zlog.Info("starting server", zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

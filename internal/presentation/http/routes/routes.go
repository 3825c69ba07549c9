package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/catering-api/internal/config"
	domainRepo "github.com/sangkips/catering-api/internal/domain/repository"
	"github.com/sangkips/catering-api/internal/presentation/http/handler"
	"github.com/sangkips/catering-api/internal/presentation/http/middleware"
	"github.com/sangkips/catering-api/pkg/metrics"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Quote          *handler.QuoteHandler
	QuoteConfig    *handler.QuoteConfigHandler
	Menu           *handler.MenuHandler
	JobApplication *handler.JobApplicationHandler
	Email          *handler.EmailHandler
	Settings       *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.Metrics
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewRateLimiter(
			middleware.RateLimiterConfigFor(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		)
		v1.Use(rateLimiter.Middleware())

		registerQuoteRoutes(v1, h, deps)
		registerQuoteConfigRoutes(v1, h)
		registerMenuRoutes(v1, h)
		registerCareerRoutes(v1, h)
		registerEmailRoutes(v1, h)

		v1.GET("/settings", h.Settings.Get)
		v1.PUT("/settings", h.Settings.Update)
	}

	return router
}

func registerQuoteRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	quotes := v1.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", idempotent, h.Quote.Create)
		quotes.POST("/preview", h.Quote.Preview)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.PATCH("/:id/status", h.Quote.UpdateStatus)
		quotes.POST("/:id/payments", idempotent, h.Quote.RecordPayment)
		quotes.GET("/:id/pdf", h.Quote.PDF)
		quotes.POST("/:id/send", h.Quote.Send)
	}
}

type catalogRoutes interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func registerCatalog(group *gin.RouterGroup, path string, h catalogRoutes) {
	g := group.Group(path)
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func registerQuoteConfigRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cfg := v1.Group("/quote-config")
	cfg.GET("/all", h.QuoteConfig.All)

	registerCatalog(cfg, "/packages", h.QuoteConfig.Packages)
	registerCatalog(cfg, "/items", h.QuoteConfig.Items)
	registerCatalog(cfg, "/labor", h.QuoteConfig.Labor)
	registerCatalog(cfg, "/tax-rates", h.QuoteConfig.TaxRates)
	registerCatalog(cfg, "/gratuity-rules", h.QuoteConfig.GratuityRules)
}

func registerMenuRoutes(v1 *gin.RouterGroup, h *Handlers) {
	registerCatalog(v1, "/menu-items", h.Menu)
}

func registerCareerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.POST("/careers/apply", h.JobApplication.Apply)

	applications := v1.Group("/job-applications")
	{
		applications.GET("", h.JobApplication.List)
		applications.GET("/:id", h.JobApplication.Get)
		applications.PATCH("/:id/status", h.JobApplication.UpdateStatus)
		applications.PATCH("/:id/notes", h.JobApplication.UpdateNotes)
		applications.DELETE("/:id", h.JobApplication.Delete)
	}
}

func registerEmailRoutes(v1 *gin.RouterGroup, h *Handlers) {
	templates := v1.Group("/email-templates")
	{
		templates.GET("", h.Email.ListTemplates)
		templates.POST("", h.Email.CreateTemplate)
		templates.GET("/:id", h.Email.GetTemplate)
		templates.PUT("/:id", h.Email.UpdateTemplate)
		templates.DELETE("/:id", h.Email.DeleteTemplate)
		templates.POST("/:id/preview", h.Email.Preview)
		templates.POST("/:id/send", h.Email.Send)
	}

	v1.GET("/email-logs", h.Email.Logs)
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rishabgems/invoice-api/internal/config"
	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/internal/presentation/http/handler"
	"github.com/rishabgems/invoice-api/internal/presentation/http/middleware"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session *handler.SessionHandler
	Invoice *handler.InvoiceHandler
	Archive *handler.ArchiveHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *logger.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewSessionRateLimiter(rateLimiterConfig(deps.Cfg.RateLimit))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"template":     deps.Cfg.Template.Path,
			"storage":      deps.Cfg.Storage.Driver,
			"rate_limiter": rateLimiter.Stats(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Starting a form and exchanging the archive key need no token; limited per client IP
		v1.POST("/sessions", rateLimiter.Middleware(), h.Session.Start)
		v1.POST("/archive/token", rateLimiter.Middleware(), h.Archive.Token)

		session := v1.Group("/session")
		session.Use(middleware.SessionAuthMiddleware(deps.JWTManager))
		registerSessionRoutes(session, h, deps, rateLimiter)

		invoices := v1.Group("/invoices")
		invoices.Use(middleware.ArchiveAuthMiddleware(deps.JWTManager))
		registerArchiveRoutes(invoices, h)
	}

	return router
}

func rateLimiterConfig(cfg config.RateLimitConfig) middleware.RateLimiterConfig {
	if cfg.Requests <= 0 || cfg.Duration <= 0 {
		return middleware.DefaultRateLimiterConfig()
	}
	return middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.Requests) / float64(cfg.Duration),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// Form edits arrive one field at a time and are not rate limited; rendering is.
func registerSessionRoutes(session *gin.RouterGroup, h *Handlers, deps *Deps, rateLimiter *middleware.SessionRateLimiter) {
	session.GET("", h.Session.Get)
	session.PUT("/bill", h.Session.UpdateBill)

	rows := session.Group("/rows")
	{
		rows.POST("", h.Session.AddRow)
		rows.PUT("/:index", h.Session.UpdateRow)
		rows.DELETE("/:index", h.Session.RemoveRow)
	}

	session.POST("/preview", rateLimiter.Middleware(), h.Invoice.Preview)
	// A retried generate with the same key replays the first document
	session.POST("/generate", rateLimiter.Middleware(), middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		TTL:    deps.Cfg.Idempotency.TTL,
		Logger: deps.Logger,
	}), h.Invoice.Generate)
}

func registerArchiveRoutes(invoices *gin.RouterGroup, h *Handlers) {
	invoices.GET("", h.Archive.List)
	invoices.GET("/export", h.Archive.Export)
	invoices.GET("/:id", h.Archive.Get)
	invoices.GET("/:id/document", h.Archive.Document)
}

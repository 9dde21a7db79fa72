package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rishabgems/invoice-api/internal/application/service"
	"github.com/rishabgems/invoice-api/internal/config"
	domainRepo "github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/rishabgems/invoice-api/internal/infrastructure/database"
	"github.com/rishabgems/invoice-api/internal/infrastructure/repository"
	"github.com/rishabgems/invoice-api/internal/infrastructure/template"
	"github.com/rishabgems/invoice-api/internal/presentation/http/handler"
	"github.com/rishabgems/invoice-api/internal/presentation/http/routes"
	"github.com/rishabgems/invoice-api/pkg/docstore"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/utils"
	"github.com/spf13/afero"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.App.Debug)
	if err != nil {
		logger.L.Fatalw("failed to build logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.App.Location()

	// Archive of generated invoices: Postgres when enabled, memory otherwise
	var archiveRepo domainRepo.InvoiceArchiveRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
		archiveRepo = repository.NewInvoiceArchiveRepository(db)
	} else {
		log.Warn("DB_ENABLED is false, the invoice archive is kept in memory")
		archiveRepo = repository.NewMemoryInvoiceArchiveRepository()
	}

	store, err := docstore.NewStoreFromConfig(ctx, docstore.Config{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
		S3: docstore.S3Config{
			Bucket:          cfg.Storage.S3.Bucket,
			Region:          cfg.Storage.S3.Region,
			KeyPrefix:       cfg.Storage.S3.KeyPrefix,
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
		},
	})
	if err != nil {
		log.Warnw("failed to initialize document storage, generated invoices will not be kept", "driver", cfg.Storage.Driver, "error", err)
		store = docstore.NewNullStore()
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.Expiry)

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)
	idempotencyRepo := repository.NewIdempotencyRepository(cfg.Session.CleanupInterval)
	templates := template.NewFileSource(afero.NewOsFs(), cfg.Template.Path)

	// Initialize services
	filler := service.NewTemplateFiller(log)
	formService := service.NewFormService(sessionRepo, cfg.Brand, loc)
	invoiceService := service.NewInvoiceService(service.InvoiceServiceDeps{
		SessionRepo: sessionRepo,
		ArchiveRepo: archiveRepo,
		Templates:   templates,
		Store:       store,
		Validator:   service.NewInvoiceValidator(loc),
		Filler:      filler,
		Brand:       cfg.Brand,
		Location:    loc,
		Logger:      log,
	})
	archiveService := service.NewArchiveService(archiveRepo, store, log)

	// The archive holds client contact details; it opens only with the operator key
	archiveKeyHash := cfg.Archive.KeyHash
	if archiveKeyHash == "" && cfg.Archive.Key != "" {
		archiveKeyHash, err = utils.HashPassword(cfg.Archive.Key)
		if err != nil {
			log.Fatalw("failed to hash archive key", "error", err)
		}
	}
	if archiveKeyHash == "" {
		log.Warn("ARCHIVE_API_KEY is not set, the invoice archive is closed")
	}
	archiveAccess := service.NewArchiveAccessService(archiveKeyHash, cfg.Archive.TokenExpiry, jwtManager, log)

	// The template must be usable before accepting requests
	tmpl, err := templates.Load(ctx)
	if err != nil {
		log.Fatalw("failed to read invoice template", "path", templates.Location(), "error", err)
	}
	layout, err := filler.Inspect(tmpl)
	if err != nil {
		log.Fatalw("invoice template is unusable", "path", templates.Location(), "error", err)
	}
	if len(layout.MissingShapes) > 0 {
		log.Warnw("invoice template lacks shapes, they will be skipped", "shapes", layout.MissingShapes)
	}
	log.Infow("invoice template loaded", "path", templates.Location(), "line_item_rows", layout.LineItemRows)

	// Initialize handlers
	handlers := &routes.Handlers{
		Session: handler.NewSessionHandler(formService, jwtManager, int64(cfg.JWT.Expiry.Seconds())),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Archive: handler.NewArchiveHandler(archiveService, archiveAccess),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Infow("starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env, "storage", store.Driver())

	if err := router.Run(":" + port); err != nil {
		log.Errorw("failed to start server", "error", err)
		os.Exit(1)
	}
}

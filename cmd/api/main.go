package main

import (
	"context"
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"siteapi/internal/config"
	handlers "siteapi/internal/http/handler"
	"siteapi/internal/http/middleware"
	"siteapi/internal/otel"
	"siteapi/internal/service"
	"siteapi/internal/store"
	"siteapi/internal/upload"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize tracing; a missing collector degrades to noop
	shutdownTracing, err := otel.Init(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize the flat-file document store (creates the file if missing)
	docStore, err := store.NewDocumentStore(cfg.DataFile)
	if err != nil {
		log.Fatalf("failed to open data file: %v", err)
	}

	// Initialize the upload backend
	var files upload.Store
	switch cfg.StorageBackend {
	case "s3":
		files, err = upload.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	default:
		files, err = upload.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to initialize upload directory: %v", err)
		}
	}

	// Initialize services
	cols := service.NewCollectionService(docStore)
	gallery := service.NewGalleryService(cols, docStore, files)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitBytes,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// The site frontend is served from a different origin
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,PUT,PATCH,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, cfg, cols, gallery, files)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

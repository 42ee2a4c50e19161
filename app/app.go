package app

import (
	"fmt"
	"log"
	"os"

	"catalogue-press/app/controller"
	"catalogue-press/app/router"
	"catalogue-press/db"
	"catalogue-press/discounts"
	"catalogue-press/layout"
	"catalogue-press/repository"
	"catalogue-press/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	// Drive integration is optional; without credentials the cover sync
	// endpoint reports unavailable and covers fall back to source URLs.
	var driveService service.DriveServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return fmt.Errorf("failed to initialize Drive service: %w", err)
		}
		driveService = ds
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive integration disabled")
	}

	// Discount engine loads its code table once at startup
	discountsPath := os.Getenv("DISCOUNTS_CONFIG")
	if discountsPath == "" {
		discountsPath = "config/discounts.json"
	}
	if _, err := discounts.NewEngine(discountsPath); err != nil {
		return fmt.Errorf("failed to initialize discount engine: %w", err)
	}

	if err := service.EnsureCacheDir(); err != nil {
		log.Printf("⚠️  Failed to create cover cache directory: %v", err)
	}

	// Repositories
	bookRepo := repository.NewBookRepository()

	// Services
	assetService := service.NewAssetService(driveService, baseURL)
	barcodeService := service.NewBarcodeService(os.Getenv("CODE_RENDER_BASE"))
	registry := layout.DefaultRegistry()
	catalogService := service.NewCatalogService(bookRepo, assetService, barcodeService, registry, baseURL)
	documentService := service.NewDocumentService()

	var syncService *service.SyncService
	if driveService != nil {
		syncService = service.NewSyncService(driveService, bookRepo)
	}

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService, documentService, baseURL),
		Book:    controller.NewBookController(bookRepo),
		Asset:   controller.NewAssetController(bookRepo, assetService, syncService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}

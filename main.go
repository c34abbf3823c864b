package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"home-services-server/config"
	"home-services-server/database"
	"home-services-server/jobs"
	"home-services-server/middleware"
	"home-services-server/routes"
	"home-services-server/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Explicit reference-data bootstrap: best effort, never fatal
	if err := seedAreas(); err != nil {
		log.Printf("⚠️  Area seed incomplete: %v", err)
	}
	if err := seedCategories(); err != nil {
		log.Printf("⚠️  Category seed incomplete: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire the service layer and the review promotion job
	lifecycle := services.NewOrderLifecycleService(database.DB)
	reviewJob := jobs.NewReviewJob(database.DB, lifecycle,
		config.AppConfig.Orders.ReviewDelay, config.AppConfig.Orders.SweepInterval)
	lifecycle.SetScheduler(reviewJob)
	routes.InitServices(lifecycle, services.NewFormService(database.DB), services.NewRatingService(database.DB))

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Home Services Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authRoutes := api.Group("/auth")
		routes.RegisterAuthRoutes(authRoutes)

		// Reference data (public)
		routes.RegisterCatalogRoutes(api)

		// Service listing and rating listings (public, area-scoped when
		// a token is present)
		serviceRoutes := api.Group("/services")
		serviceRoutes.Use(middleware.OptionalAuthMiddleware())
		routes.RegisterServiceRoutes(serviceRoutes)
		routes.RegisterPublicRatingRoutes(api)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protectedServices := protected.Group("/services")
			routes.RegisterProtectedServiceRoutes(protectedServices)
			routes.RegisterFormRoutes(protectedServices)

			routes.RegisterOrderRoutes(protected)
			routes.RegisterRatingRoutes(protected)
		}

		// Admin routes
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		routes.RegisterEarningsRoutes(adminRoutes)
	}

	// Start the review promotion job and catch up on anything that was
	// due while the process was down
	reviewJob.Start()
	defer reviewJob.Stop()
	go reviewJob.SweepOverdue()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

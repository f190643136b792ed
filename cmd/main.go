package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/menulink/menulink-api/docs" // Import generated docs
	"github.com/menulink/menulink-api/internal/auth"
	"github.com/menulink/menulink-api/internal/billing"
	"github.com/menulink/menulink-api/internal/config"
	"github.com/menulink/menulink-api/internal/controllers"
	"github.com/menulink/menulink-api/internal/database"
	"github.com/menulink/menulink-api/internal/middleware"
	"github.com/menulink/menulink-api/internal/qr"
	"github.com/menulink/menulink-api/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	menuController    controllers.MenuController
	publicController  *controllers.PublicController
	sectionController *controllers.SectionController
	billingController *controllers.BillingController
	usageController   *controllers.UsageController
	authController    *controllers.AuthController
	clientController  *controllers.ClientController
	oauthService      *auth.OAuthService
)

// @title MenuLink API
// @version 1.0
// @description Digital menu management with QR codes for restaurants
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	setupControllers(configuration)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase initializes the database connection and runs migrations
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	return db
}

// setupControllers wires services, the billing provider and controllers
func setupControllers(conf *config.Config) {
	menuService := services.NewMenuService(db)
	sectionService := services.NewSectionService(db)
	scanService := services.NewScanService(db)
	qrService := services.NewQRService(db)
	usageService := services.NewUsageService(db, conf.ImageGenDailyLimit)
	billingService := services.NewBillingService(db)
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)

	provider := billing.NewStripeProvider(conf.StripeAPIKey, conf.StripeWebhookSecret)

	menuController = controllers.NewMenuController(menuService, qrService, qr.DefaultGenerator{}, conf.SiteURL)
	publicController = controllers.NewPublicController(menuService, scanService)
	sectionController = controllers.NewSectionController(sectionService)
	billingController = controllers.NewBillingController(billingService, userService, provider, conf.SiteURL)
	usageController = controllers.NewUsageController(usageService)
	authController = controllers.NewAuthController(userService, conf.JWTSecret)
	clientController = controllers.NewClientController(clientService)
	oauthService = auth.NewOAuthService(db, conf.JWTSecret)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	if configuration.CORSOrigins != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = strings.Split(configuration.CORSOrigins, ",")
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		router.Use(cors.New(corsConfig))
	}

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// OAuth2 token endpoint for integration clients
	router.POST("/oauth/token", oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		// Visitor-facing routes, no authentication
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/menus/:id", publicController.GetPublicMenu)
			publicApi.GET("/menus/slug/:slug", publicController.GetPublicMenuBySlug)
			publicApi.POST("/track-qr-scan/:menuId", publicController.TrackQRScan)
		}

		// Authentication routes
		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/login", authController.Login)
		}

		// Webhook endpoint authenticates via its own signature check, not JWT
		v1.POST("/billing/webhooks", billingController.HandleWebhook)

		// Menu restore is gated on plan, not on auth; it refuses every
		// caller the same way, authenticated or not
		v1.PATCH("/menus/:id/restore", menuController.RestoreMenu)

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("")
		protectedApi.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		{
			menus := protectedApi.Group("/menus")
			{
				menus.GET("", menuController.GetMenus)
				menus.POST("", menuController.CreateMenu)
				menus.GET("/deleted", menuController.GetDeletedMenus)
				menus.GET("/:id", menuController.GetMenu)
				menus.PUT("/:id", menuController.UpdateMenu)
				menus.DELETE("/:id", menuController.DeleteMenu)
				menus.PATCH("/:id/publish", menuController.PublishMenu)

				menus.POST("/:id/sections", sectionController.CreateSection)
				menus.PUT("/:id/sections/:sectionId", sectionController.UpdateSection)
				menus.DELETE("/:id/sections/:sectionId", sectionController.DeleteSection)
				menus.POST("/:id/sections/:sectionId/items", sectionController.CreateItem)
				menus.PUT("/:id/items/:itemId", sectionController.UpdateItem)
				menus.DELETE("/:id/items/:itemId", sectionController.DeleteItem)

				menus.POST("/:id/qrcodes", menuController.RotateQRCode)
				menus.GET("/:id/qrcodes", menuController.ListQRCodes)
				menus.GET("/:id/qrcode.png", menuController.GetQRCodePNG)
			}

			billingApi := protectedApi.Group("/billing")
			{
				billingApi.GET("/plans", billingController.GetPlans)
				billingApi.POST("/checkout", billingController.CreateCheckout)
				billingApi.POST("/portal", billingController.CreatePortal)
				billingApi.GET("/subscription", billingController.GetSubscription)
			}

			usageApi := protectedApi.Group("/usage")
			{
				usageApi.GET("/image-generation", usageController.GetImageGenerationUsage)
				usageApi.POST("/image-generation", usageController.ConsumeImageGeneration)
			}

			// Integration credentials belong to restaurant accounts, so
			// the surface is owner-only
			clients := protectedApi.Group("/clients")
			clients.Use(middleware.RequireRole("owner"))
			{
				clients.POST("", clientController.CreateClient)
				clients.GET("", clientController.ListClients)
				clients.DELETE("/:id", clientController.DeleteClient)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "menulink-api",
	})
}

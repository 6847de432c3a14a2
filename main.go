package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"child-clinic-server/internal/app"
	"child-clinic-server/internal/config"
	"child-clinic-server/internal/middleware"
	"child-clinic-server/internal/models"
	"child-clinic-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env file is fine in
	// containerized deployments
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("error loading config: " + err.Error())
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}

	// Make sure the distinguished admin account exists
	if err := models.SeedAdmin(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatal("error seeding admin account", zap.Error(err))
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

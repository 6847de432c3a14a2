package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"child-clinic-server/internal/config"
	"child-clinic-server/internal/handlers"
	"child-clinic-server/internal/middleware"
	"child-clinic-server/internal/models"
	"child-clinic-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize stores and handlers
	userStore := store.NewGormUserStore(db)
	tokenStore := store.NewGormRefreshTokenStore(db)
	authHandler := handlers.NewAuthHandler(userStore, tokenStore, cfg)
	userHandler := handlers.NewUserHandler(userStore)
	appointmentHandler := handlers.NewAppointmentHandler(store.NewGormAppointmentStore(db))
	catalogHandler := handlers.NewCatalogHandler()

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Static reference content for the booking form
		public.GET("/doctors", catalogHandler.GetDoctors)
		public.GET("/time-slots", catalogHandler.GetTimeSlots)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Guardians book for themselves; the guardian email is stamped
			// from the token inside the handler
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)

			// Full listing is admin only
			appointmentRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.GetAppointments)

			// Per-guardian listing (self or admin, checked in the handler)
			appointmentRoutes.GET("/by-email/:email", appointmentHandler.GetAppointmentsByEmail)

			// Cancellation (owning guardian or admin, checked in the handler)
			appointmentRoutes.DELETE("/:id", appointmentHandler.CancelAppointment)
		}

		// Account administration routes (admin only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}

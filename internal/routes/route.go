package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/enquiry/internal/container"
	"github.com/joshua-takyi/enquiry/internal/handlers"
	"github.com/joshua-takyi/enquiry/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "enquiry-api",
			})
		})

		// public registration page
		v1.GET("/events/:id", handlers.PublicEvent(container.EventService))
		v1.POST("/events/:id/register", handlers.RegisterPublic(container.RegistrationService))
		v1.POST("/registrations/validate", handlers.ValidateRegistrationField())

		v1.POST("/admin/login", handlers.Login(container.AdminService, container.Sessions, cfg.AdminEmails))
		v1.POST("/admin/logout", handlers.Logout(container.Sessions))
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(container.Sessions, container.TokenValidator, container.AdminService, cfg.AdminEmails, container.Logger))
	{
		admin.GET("/me", handlers.Me())
		admin.POST("/bulk-messages", handlers.SendBulkMessages(container.BroadcastService))
	}

	eventRoutes := admin.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents(container.EventService))
		eventRoutes.POST("", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(container.EventService))
		eventRoutes.PUT("/:id", handlers.UpdateEvent(container.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(container.EventService))

		eventRoutes.GET("/:id/registrations", handlers.ListRegistrations(container.RegistrationService))
		eventRoutes.POST("/:id/registrations", handlers.AddLead(container.RegistrationService))
		eventRoutes.GET("/:id/export", handlers.ExportRegistrations(container.RegistrationService))
		eventRoutes.GET("/:id/qr", handlers.EventQR(container.EventService))
		eventRoutes.GET("/:id/qr/pdf", handlers.EventQRPDF(container.EventService))
	}

	return r
}

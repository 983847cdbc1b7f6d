package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safewalk/safewalk-backend-go/internal/handler"
	"github.com/safewalk/safewalk-backend-go/internal/middleware"
	"github.com/safewalk/safewalk-backend-go/internal/service"
)

// Services groups everything the router wires into handlers
type Services struct {
	Auth     *service.AuthService
	Safety   *service.SafetyService
	SOS      *service.SOSService
	Location *service.LocationService
}

// SetupRouter builds the gin engine with all routes and middleware
func SetupRouter(services Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	authHandler := handler.NewAuthHandler(services.Auth)
	safetyHandler := handler.NewSafetyHandler(services.Safety)
	sosHandler := handler.NewSOSHandler(services.SOS)
	locationHandler := handler.NewLocationHandler(services.Location)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "SafeWalk Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(20, time.Minute))
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
		}

		safety := api.Group("/safety")
		{
			safety.POST("/score", safetyHandler.ScorePoint)
			safety.POST("/route", safetyHandler.ScoreRoute)
			safety.POST("/track", safetyHandler.Track)
			safety.DELETE("/track/:session_id", safetyHandler.EndSession)
		}

		// SOS accepts anonymous alerts; the token only attributes them
		api.POST("/sos", middleware.OptionalAuth(services.Auth), sosHandler.Raise)
		api.GET("/sos", middleware.Auth(services.Auth), sosHandler.List)

		locations := api.Group("/locations")
		locations.Use(middleware.Auth(services.Auth))
		{
			locations.POST("", locationHandler.Save)
			locations.GET("", locationHandler.List)
			locations.DELETE("/:id", locationHandler.Delete)
			locations.POST("/:id/contacts", locationHandler.AddContact)
			locations.GET("/:id/contacts", locationHandler.ListContacts)
		}
	}

	return r
}

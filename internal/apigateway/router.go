package apigateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcription-qa-platform/internal/auth"
	"transcription-qa-platform/internal/configmanagement"
	"transcription-qa-platform/internal/jobmanagement"
)

// SetupRouter initializes the main Gin router for the API gateway.
// It includes the public health/login routes and the authenticated admin
// routes for triggering evaluation runs and inspecting results.
func SetupRouter(runService *jobmanagement.RunService, configHandlers *configmanagement.ConfigHandlers) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes. LoadAdminCredentials must have been called at
	// application startup (see cmd/server).
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", auth.LoginHandler)
		authRoutes.POST("/logout", auth.LogoutHandler)
	}

	runHandlers := &jobmanagement.RunHandlers{Service: runService}

	// Authenticated routes. Everything in this group requires the admin
	// session cookie.
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware())
	{
		// Active configuration (read-only; loaded once at startup).
		configRoutes := adminRoutes.Group("/config")
		{
			configRoutes.GET("/thresholds", configHandlers.GetThresholdsHandler)
			configRoutes.GET("/transcriptor", configHandlers.GetTranscriptorHandler)
		}

		// Evaluation run management.
		runRoutes := adminRoutes.Group("/runs")
		{
			runRoutes.POST("", runHandlers.CreateRunHandler)
			runRoutes.GET("", runHandlers.ListRunsHandler)
			runRoutes.GET("/:id", runHandlers.GetRunHandler)
			runRoutes.GET("/:id/records", runHandlers.GetRunRecordsHandler)
		}
	}

	return router
}

// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/application/container"
	"github.com/BharatAdaptive/munimji-go/internal/presentation/http/handlers"
	"github.com/BharatAdaptive/munimji-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.FingerprintMiddleware())

	// Initialize handlers
	healthHandlers := handlers.NewHealthHandlers()
	initHandlers := handlers.NewInitHandlers(container.PersonalizationService, container.Logger, container.PerfTracker)
	eventHandlers := handlers.NewEventHandlers(container.ProfileService, container.Logger, container.PerfTracker)
	feedbackHandlers := handlers.NewFeedbackHandlers(container.ProfileService, container.Logger, container.PerfTracker)
	intelligenceHandlers := handlers.NewIntelligenceHandlers(container.ProfileService, container.Logger, container.PerfTracker)
	personaHandlers := handlers.NewPersonaHandlers(container.CatalogService, container.Logger, container.PerfTracker)
	opsHandlers := handlers.NewOpsHandlers(container.PulseBroadcaster, container.Logger, container.PerfTracker)

	r.GET("/", healthHandlers.GetRoot)

	api := r.Group("/api/v1")
	{
		api.POST("/init", initHandlers.PostInit)
		api.POST("/events", eventHandlers.PostEvents)
		api.POST("/feedback", feedbackHandlers.PostFeedback)
		api.GET("/intelligence", intelligenceHandlers.GetIntelligence)
		api.GET("/personas", personaHandlers.GetPersonas)
		api.GET("/ops/pulse", opsHandlers.GetPulse)
		api.GET("/ops/logs", opsHandlers.GetLogs)
		api.GET("/ops/perf", opsHandlers.GetPerf)
	}

	return r
}

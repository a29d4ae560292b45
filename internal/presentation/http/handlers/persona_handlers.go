package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/application/services"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
)

// PersonaHandlers contains the persona catalog endpoint
type PersonaHandlers struct {
	catalogService *services.CatalogService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewPersonaHandlers creates persona handlers with injected dependencies
func NewPersonaHandlers(catalogService *services.CatalogService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PersonaHandlers {
	return &PersonaHandlers{
		catalogService: catalogService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetPersonas handles GET /api/v1/personas - catalog with feedback tallies
func (h *PersonaHandlers) GetPersonas(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_personas_request")
	defer h.perfTracker.CompleteOperation(marker)

	views := h.catalogService.ListPersonas()

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"personas": views, "count": len(views)})
}

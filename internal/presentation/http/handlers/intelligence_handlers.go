package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/application/services"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
	"github.com/BharatAdaptive/munimji-go/internal/presentation/http/middleware"
)

// IntelligenceHandlers contains the profile summary endpoint
type IntelligenceHandlers struct {
	profileService *services.ProfileService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewIntelligenceHandlers creates intelligence handlers with injected dependencies
func NewIntelligenceHandlers(profileService *services.ProfileService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *IntelligenceHandlers {
	return &IntelligenceHandlers{
		profileService: profileService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetIntelligence handles GET /api/v1/intelligence - the caller's summary.
// GET carries no body, so resolution stops at token and header; callers with
// neither get a summary for a fresh profile under a minted id.
func (h *IntelligenceHandlers) GetIntelligence(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_intelligence_request")
	defer h.perfTracker.CompleteOperation(marker)

	fingerprintID, _ := middleware.ResolveFingerprint(c, c.Query("fingerprintId"))

	summary, err := h.profileService.Summarize(fingerprintID)
	if err != nil {
		h.logger.System().Error("Summary failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, summary)
}

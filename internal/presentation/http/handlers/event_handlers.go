package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/application/services"
	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
	"github.com/BharatAdaptive/munimji-go/internal/presentation/http/middleware"
)

// EventHandlers contains the event ingestion endpoint
type EventHandlers struct {
	profileService *services.ProfileService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewEventHandlers creates event handlers with injected dependencies
func NewEventHandlers(profileService *services.ProfileService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EventHandlers {
	return &EventHandlers{
		profileService: profileService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// EventBatchRequest is the inbound payload for batch event ingestion.
type EventBatchRequest struct {
	FingerprintID string               `json:"fingerprintId"`
	Events        []intelligence.Event `json:"events"`
}

// PostEvents handles POST /api/v1/events - batch event ingestion
func (h *EventHandlers) PostEvents(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_events_request")
	defer h.perfTracker.CompleteOperation(marker)

	var req EventBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.System().Error("Event batch parse failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fingerprintID, _ := middleware.ResolveFingerprint(c, req.FingerprintID)

	applied, err := h.profileService.AddEvents(fingerprintID, req.Events)
	if err != nil {
		h.logger.System().Error("Event batch failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event ingestion failed"})
		return
	}

	marker.AddMetadata("applied", applied)
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"applied": applied, "fingerprintId": fingerprintID})
}

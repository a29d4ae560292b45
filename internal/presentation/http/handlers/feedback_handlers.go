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

// FeedbackHandlers contains the persona feedback endpoint
type FeedbackHandlers struct {
	profileService *services.ProfileService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewFeedbackHandlers creates feedback handlers with injected dependencies
func NewFeedbackHandlers(profileService *services.ProfileService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *FeedbackHandlers {
	return &FeedbackHandlers{
		profileService: profileService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// FeedbackRequest is the inbound payload for persona feedback.
type FeedbackRequest struct {
	FingerprintID string `json:"fingerprintId"`
	PersonaID     string `json:"personaId"`
	Polarity      string `json:"polarity"`
}

// PostFeedback handles POST /api/v1/feedback - explicit persona like/dislike
func (h *FeedbackHandlers) PostFeedback(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_feedback_request")
	defer h.perfTracker.CompleteOperation(marker)

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.System().Error("Feedback request parse failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	polarity := intelligence.FeedbackPolarity(req.Polarity)
	if !polarity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "polarity must be like or dislike"})
		return
	}
	if req.PersonaID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "personaId is required"})
		return
	}

	fingerprintID, _ := middleware.ResolveFingerprint(c, req.FingerprintID)

	if err := h.profileService.RecordFeedback(fingerprintID, req.PersonaID, polarity); err != nil {
		h.logger.System().Error("Feedback failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feedback failed"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"recorded": true, "fingerprintId": fingerprintID})
}

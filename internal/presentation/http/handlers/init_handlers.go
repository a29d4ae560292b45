package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/application/services"
	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
	"github.com/BharatAdaptive/munimji-go/internal/presentation/http/middleware"
)

// InitHandlers contains the core personalization endpoint
type InitHandlers struct {
	personalizationService *services.PersonalizationService
	logger                 *logging.ChanneledLogger
	perfTracker            *performance.Tracker
}

// NewInitHandlers creates init handlers with injected dependencies
func NewInitHandlers(personalizationService *services.PersonalizationService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *InitHandlers {
	return &InitHandlers{
		personalizationService: personalizationService,
		logger:                 logger,
		perfTracker:            perfTracker,
	}
}

// InitRequest is the inbound payload for the personalization round-trip.
type InitRequest struct {
	FingerprintID string           `json:"fingerprintId"`
	Signals       signals.Snapshot `json:"signals"`
}

// PostInit handles POST /api/v1/init - the full personalization round-trip
func (h *InitHandlers) PostInit(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_init_request")
	defer h.perfTracker.CompleteOperation(marker)

	var req InitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.System().Error("Init request parse failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fingerprintID, minted := middleware.ResolveFingerprint(c, req.FingerprintID)
	if minted {
		h.logger.System().Debug("Minted fingerprint for anonymous init")
	}

	result, err := h.personalizationService.Init(c.Request.Context(), fingerprintID, &req.Signals)
	if err != nil {
		h.logger.System().Error("Personalization failed", "error", err.Error())
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "personalization failed"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

package services

import (
	"fmt"
	"time"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
)

// ProfileService fronts the profile store for event ingestion, feedback, and
// intelligence summaries.
type ProfileService struct {
	store  intelligence.Store
	logger *logging.ChanneledLogger
}

// NewProfileService creates a new profile service.
func NewProfileService(store intelligence.Store, logger *logging.ChanneledLogger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// AddEvents ingests a batch of events for a fingerprint. Events with no
// timestamp are stamped server-side. Unknown event types and categories flow
// through untouched; only store failures error.
func (s *ProfileService) AddEvents(fingerprintID string, events []intelligence.Event) (int, error) {
	now := time.Now().UnixMilli()
	for i := range events {
		if events[i].Timestamp == 0 {
			events[i].Timestamp = now
		}
	}

	applied, err := s.store.AddEvents(fingerprintID, events)
	if err != nil {
		return 0, fmt.Errorf("failed to apply events: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFingerprint(logging.ChannelProfile, fingerprintID).Debug("Event batch ingested", "applied", applied)
	}
	return applied, nil
}

// RecordFeedback registers an explicit like or dislike against a persona.
func (s *ProfileService) RecordFeedback(fingerprintID, personaID string, polarity intelligence.FeedbackPolarity) error {
	if err := s.store.RecordFeedback(fingerprintID, personaID, polarity); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFingerprint(logging.ChannelProfile, fingerprintID).Debug("Feedback recorded",
			"personaId", personaID, "polarity", string(polarity))
	}
	return nil
}

// Summarize builds the intelligence summary for a fingerprint.
func (s *ProfileService) Summarize(fingerprintID string) (*intelligence.Summary, error) {
	summary, err := s.store.Summarize(fingerprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	return summary, nil
}

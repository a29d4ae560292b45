package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/domain/personas"
	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
	"github.com/BharatAdaptive/munimji-go/internal/domain/suggestions"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/security"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// PersonalizationService orchestrates the full init round-trip: scenario
// match, profile update, suggestion ranking, greeting, and session token.
type PersonalizationService struct {
	catalogService  *CatalogService
	greetingService *GreetingService
	store           intelligence.Store
	logger          *logging.ChanneledLogger
}

// InitResult is the complete personalization payload for one init call.
type InitResult struct {
	FingerprintID   string                   `json:"fingerprintId"`
	PersonaID       string                   `json:"personaId"`
	PersonaName     string                   `json:"personaName"`
	Confidence      float64                  `json:"confidence"`
	Fallback        bool                     `json:"fallback"`
	Suggestions     []suggestions.Suggestion `json:"suggestions"`
	Greeting        string                   `json:"greeting"`
	Reasoning       []string                 `json:"reasoning"`
	JourneyDay      int                      `json:"journeyDay"`
	Stage           intelligence.Stage       `json:"stage"`
	RecommendedMode string                   `json:"recommendedMode"`
	Segment         string                   `json:"segment"`
	SessionToken    string                   `json:"sessionToken,omitempty"`
}

// NewPersonalizationService creates a new personalization orchestrator.
func NewPersonalizationService(
	catalogService *CatalogService,
	greetingService *GreetingService,
	store intelligence.Store,
	logger *logging.ChanneledLogger,
) *PersonalizationService {
	return &PersonalizationService{
		catalogService:  catalogService,
		greetingService: greetingService,
		store:           store,
		logger:          logger,
	}
}

// Init runs the full personalization round-trip for one signal snapshot.
func (s *PersonalizationService) Init(ctx context.Context, fingerprintID string, snapshot *signals.Snapshot) (*InitResult, error) {
	start := time.Now()
	catalog := s.catalogService.Catalog()

	match := personas.Match(catalog, snapshot)
	reasoning := matchReasoning(match)

	if _, err := s.store.GetOrCreate(fingerprintID); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	sessionEvent := intelligence.Event{
		Type:      intelligence.EventSessionStart,
		Scenario:  match.PersonaID,
		Timestamp: time.Now().UnixMilli(),
	}
	if _, err := s.store.AddEvents(fingerprintID, []intelligence.Event{sessionEvent}); err != nil {
		return nil, fmt.Errorf("failed to record session start: %w", err)
	}
	if err := s.store.UpdateScenario(fingerprintID, match.PersonaID); err != nil {
		return nil, fmt.Errorf("failed to update scenario: %w", err)
	}

	record, err := s.store.GetOrCreate(fingerprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	day, err := s.store.JourneyDay(fingerprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute journey day: %w", err)
	}
	stage := intelligence.StageForDay(day)
	reasoning = append(reasoning, fmt.Sprintf("journey day %d places this user in the %s stage", day, stage))

	persona, ok := catalog.Get(match.PersonaID)
	var ranked []suggestions.Suggestion
	if ok {
		ranked = suggestions.Rank(persona.Suggestions, record.Preferences)
		reasoning = append(reasoning, rankReasoning(persona.Suggestions, record.Preferences)...)
		if s.logger != nil {
			s.logger.WithFingerprint(logging.ChannelRank, fingerprintID).Debug("Suggestions ranked",
				"personaId", match.PersonaID,
				"candidates", len(persona.Suggestions),
				"likedCategories", len(record.Preferences.LikedCategories),
				"dislikedCategories", len(record.Preferences.DislikedCategories))
		}
	}

	mode, segment := recommendedMode(snapshot)
	if mode == "lite" {
		reasoning = append(reasoning, "constrained device or network detected; recommending lite mode")
	}

	greeting := s.greetingService.Compose(ctx, snapshot, persona.Name, stage)

	token, err := security.GenerateSessionToken(fingerprintID, config.JWTSecret, config.SessionTokenTTL)
	if err != nil {
		if s.logger != nil {
			s.logger.System().Warn("Failed to issue session token", "error", err.Error())
		}
		token = ""
	}

	if s.logger != nil {
		s.logger.WithFingerprint(logging.ChannelMatch, fingerprintID).Info("Personalization round-trip complete",
			"personaId", match.PersonaID,
			"confidence", match.Confidence,
			"fallback", match.Fallback,
			"stage", string(stage),
			"mode", mode,
			"duration", time.Since(start))
	}

	return &InitResult{
		FingerprintID:   fingerprintID,
		PersonaID:       match.PersonaID,
		PersonaName:     persona.Name,
		Confidence:      match.Confidence,
		Fallback:        match.Fallback,
		Suggestions:     ranked,
		Greeting:        greeting,
		Reasoning:       reasoning,
		JourneyDay:      day,
		Stage:           stage,
		RecommendedMode: mode,
		Segment:         segment,
		SessionToken:    token,
	}, nil
}

// recommendedMode picks the UI mode from hardware and network constraints.
// Low-end hardware, data saving, or power saving all force lite mode.
func recommendedMode(snapshot *signals.Snapshot) (mode, segment string) {
	if snapshot.Device.Class == "low_end" || snapshot.Network.SaveData || snapshot.Battery.PowerSave {
		return "lite", "lite_mode_user"
	}
	return "standard", "general"
}

// matchReasoning explains the scenario match outcome.
func matchReasoning(match personas.MatchResult) []string {
	if match.Fallback {
		if match.TotalTriggers == 0 {
			return []string{fmt.Sprintf("no scorable persona available; using fallback %q", match.PersonaID)}
		}
		return []string{fmt.Sprintf("best persona score %.2f stayed below the %.2f threshold; using fallback %q",
			match.Confidence, config.MatchThreshold, match.PersonaID)}
	}
	return []string{fmt.Sprintf("matched persona %q with confidence %.2f (%d of %d triggers: %s)",
		match.PersonaID, match.Confidence, len(match.SatisfiedTriggers), match.TotalTriggers,
		strings.Join(match.SatisfiedTriggers, ", "))}
}

// rankReasoning explains which learned preferences moved suggestions.
func rankReasoning(candidates []suggestions.Suggestion, prefs *intelligence.Preferences) []string {
	var boosted, demoted, sourceMatched int
	for _, c := range candidates {
		category := suggestions.CategoryFor(c.ContentType)
		if prefs.HasLiked(category) {
			boosted++
		}
		if prefs.HasDisliked(category) {
			demoted++
		}
		for _, src := range prefs.PreferredSources {
			if strings.EqualFold(src, c.Source) {
				sourceMatched++
				break
			}
		}
	}

	var out []string
	if boosted > 0 {
		out = append(out, fmt.Sprintf("boosted %d suggestions from liked categories", boosted))
	}
	if demoted > 0 {
		out = append(out, fmt.Sprintf("demoted %d suggestions from disliked categories", demoted))
	}
	if sourceMatched > 0 {
		out = append(out, fmt.Sprintf("nudged %d suggestions from familiar sources", sourceMatched))
	}
	return out
}

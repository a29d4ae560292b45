package services

import (
	"context"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/provider"
)

// GreetingService composes the greeting line for the init response.
type GreetingService struct {
	provider provider.GreetingProvider
	logger   *logging.ChanneledLogger
}

// NewGreetingService creates a new greeting service.
func NewGreetingService(p provider.GreetingProvider, logger *logging.ChanneledLogger) *GreetingService {
	return &GreetingService{provider: p, logger: logger}
}

// Compose builds the greeting request from the matched context and asks the
// provider for a line. Provider failures degrade to the static default
// rather than failing the init round-trip.
func (s *GreetingService) Compose(ctx context.Context, snapshot *signals.Snapshot, personaName string, stage intelligence.Stage) string {
	req := provider.GreetingRequest{
		PersonaName: personaName,
		Stage:       string(stage),
		TimeOfDay:   snapshot.Temporal.TimeOfDay,
		Language:    snapshot.Temporal.Language,
	}
	if snapshot.Questionnaire != nil {
		req.Interests = snapshot.Questionnaire.Interests
	}

	greeting, err := s.provider.Greeting(ctx, req)
	if err != nil {
		if s.logger != nil {
			s.logger.Provider().Warn("Greeting provider failed", "provider", s.provider.Name(), "error", err.Error())
		}
		static := provider.NewStaticProvider()
		greeting, _ = static.Greeting(ctx, req)
	}
	return greeting
}

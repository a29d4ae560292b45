// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/BharatAdaptive/munimji-go/internal/application/services"
	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/messaging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/persistence/database"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/persistence/profiles"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/provider"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/store"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	PersonalizationService *services.PersonalizationService
	ProfileService         *services.ProfileService
	CatalogService         *services.CatalogService
	GreetingService        *services.GreetingService

	// Infrastructure
	Store            intelligence.Store
	Journal          *profiles.SQLJournalRepository
	DB               *database.DB
	PulseBroadcaster *messaging.PulseBroadcaster
	Logger           *logging.ChanneledLogger
	PerfTracker      *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(logger *logging.ChanneledLogger) (*Container, error) {
	db, err := database.NewConnectionWithLogger(config.DatabaseURL, config.DatabaseAuthToken, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	journal, err := profiles.NewSQLJournalRepository(db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	profileStore := store.NewMemoryStore(journal, logger)

	snapshots, err := journal.LoadSnapshots()
	if err != nil {
		return nil, fmt.Errorf("failed to load journaled profiles: %w", err)
	}
	tallies, err := journal.FeedbackTallies()
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback tallies: %w", err)
	}
	profileStore.Rehydrate(snapshots, tallies)

	var greetingProvider provider.GreetingProvider
	if config.GenAIAPIKey != "" {
		genaiProvider, err := provider.NewGenAIProvider(config.GenAIAPIKey, config.GenAIModel, config.GenAITimeout, logger)
		if err != nil {
			logger.Startup().Warn("GenAI provider unavailable, using static greetings", "error", err.Error())
			greetingProvider = provider.NewStaticProvider()
		} else {
			greetingProvider = genaiProvider
		}
	} else {
		greetingProvider = provider.NewStaticProvider()
	}
	logger.Startup().Info("Greeting provider selected", "provider", greetingProvider.Name())

	catalogService, err := services.NewCatalogService(config.CatalogPath, profileStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog service: %w", err)
	}
	greetingService := services.NewGreetingService(greetingProvider, logger)

	return &Container{
		PersonalizationService: services.NewPersonalizationService(catalogService, greetingService, profileStore, logger),
		ProfileService:         services.NewProfileService(profileStore, logger),
		CatalogService:         catalogService,
		GreetingService:        greetingService,

		Store:            profileStore,
		Journal:          journal,
		DB:               db,
		PulseBroadcaster: messaging.NewPulseBroadcaster(profileStore, logger),
		Logger:           logger,
		PerfTracker:      performance.NewTracker(performance.DefaultTrackerConfig()),
	}, nil
}

// Close releases infrastructure resources held by the container.
func (c *Container) Close() error {
	if c.PulseBroadcaster != nil {
		c.PulseBroadcaster.Shutdown()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

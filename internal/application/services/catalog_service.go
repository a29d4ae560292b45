package services

import (
	"fmt"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/domain/personas"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
)

// CatalogService owns the loaded persona catalog and exposes it with global
// feedback tallies.
type CatalogService struct {
	catalog *personas.Catalog
	store   intelligence.Store
	logger  *logging.ChanneledLogger
}

// PersonaView is a catalog entry enriched with feedback aggregates.
type PersonaView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Triggers    []string `json:"triggers"`
	Suggestions int      `json:"suggestions"`
	Likes       int      `json:"likes"`
	Dislikes    int      `json:"dislikes"`
}

// NewCatalogService loads the persona catalog from the configured path,
// falling back to the compiled-in default catalog when no path is set.
func NewCatalogService(catalogPath string, store intelligence.Store, logger *logging.ChanneledLogger) (*CatalogService, error) {
	catalog, err := personas.LoadCatalog(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load persona catalog: %w", err)
	}
	if logger != nil {
		source := "default"
		if catalogPath != "" {
			source = catalogPath
		}
		logger.Startup().Info("Persona catalog loaded", "source", source, "personas", catalog.Len())
	}
	return &CatalogService{catalog: catalog, store: store, logger: logger}, nil
}

// Catalog returns the loaded catalog.
func (s *CatalogService) Catalog() *personas.Catalog {
	return s.catalog
}

// ListPersonas returns every catalog entry in definition order with its
// global like/dislike tallies merged in.
func (s *CatalogService) ListPersonas() []PersonaView {
	tallies := s.store.PersonaFeedback()
	all := s.catalog.Personas()

	views := make([]PersonaView, 0, len(all))
	for _, p := range all {
		triggers := make([]string, 0, len(p.Triggers))
		for _, t := range p.Triggers {
			triggers = append(triggers, t.Name)
		}
		counts := tallies[p.ID]
		views = append(views, PersonaView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Triggers:    triggers,
			Suggestions: len(p.Suggestions),
			Likes:       counts.Likes,
			Dislikes:    counts.Dislikes,
		})
	}
	return views
}

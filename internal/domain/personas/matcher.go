package personas

import (
	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// MatchResult is the outcome of scoring a snapshot against the catalog.
// A sub-threshold score is not an error: the fallback persona carries
// the computed confidence so callers can still see how close it was.
type MatchResult struct {
	PersonaID         string   `json:"personaId"`
	Confidence        float64  `json:"confidence"`
	Fallback          bool     `json:"fallback"`
	SatisfiedTriggers []string `json:"satisfiedTriggers,omitempty"`
	TotalTriggers     int      `json:"totalTriggers"`
}

// Match scores every persona as satisfied-triggers over total-triggers
// and picks the maximum. Personas with no triggers are skipped. Ties go
// to the persona defined earlier in the catalog, deterministically. If
// the best score is below the match threshold the reserved fallback
// persona is returned with the computed confidence preserved; an empty
// catalog yields the fallback with a fixed default confidence.
//
// Pure: no side effects, identical input always yields identical output.
func Match(catalog *Catalog, snapshot *signals.Snapshot) MatchResult {
	if catalog == nil || catalog.Len() == 0 {
		return MatchResult{
			PersonaID:  FallbackPersonaID,
			Confidence: config.EmptyCatalogConfidence,
			Fallback:   true,
		}
	}

	var best MatchResult
	found := false

	for _, persona := range catalog.Personas() {
		total := len(persona.Triggers)
		if total == 0 {
			continue
		}

		var satisfied []string
		for _, trigger := range persona.Triggers {
			if trigger.Satisfied(snapshot) {
				satisfied = append(satisfied, trigger.Name)
			}
		}

		score := float64(len(satisfied)) / float64(total)
		// Strict greater-than keeps the first-defined persona on ties.
		if !found || score > best.Confidence {
			best = MatchResult{
				PersonaID:         persona.ID,
				Confidence:        score,
				SatisfiedTriggers: satisfied,
				TotalTriggers:     total,
			}
			found = true
		}
	}

	if !found {
		// Every persona had zero triggers; nothing is selectable.
		return MatchResult{
			PersonaID:  FallbackPersonaID,
			Confidence: config.EmptyCatalogConfidence,
			Fallback:   true,
		}
	}

	if best.Confidence < config.MatchThreshold {
		best.PersonaID = FallbackPersonaID
		best.Fallback = true
	}
	return best
}

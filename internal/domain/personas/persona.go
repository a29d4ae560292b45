// Package personas defines the static behavioral persona catalog and the
// scenario matcher that scores personas against live signal snapshots.
package personas

import (
	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
	"github.com/BharatAdaptive/munimji-go/internal/domain/suggestions"
)

// FallbackPersonaID is the reserved persona selected when no persona
// clears the match threshold or the catalog is empty.
const FallbackPersonaID = "general"

// Predicate is a boolean condition over a signal snapshot.
type Predicate func(*signals.Snapshot) bool

// Persona is one catalog entry: a named cluster of trigger conditions
// plus its candidate suggestions. Immutable after catalog load.
type Persona struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Triggers    []Trigger                `json:"triggers"`
	Suggestions []suggestions.Suggestion `json:"suggestions"`
}

// Trigger is a named predicate resolved against the trigger table at
// catalog load time. A name the table does not know resolves to the
// always-false predicate rather than an error.
type Trigger struct {
	Name      string `json:"name"`
	predicate Predicate
}

// NewTrigger resolves a trigger name against the predicate table.
func NewTrigger(name string) Trigger {
	return Trigger{Name: name, predicate: resolvePredicate(name)}
}

// Satisfied evaluates the trigger against a snapshot.
func (t Trigger) Satisfied(snapshot *signals.Snapshot) bool {
	if t.predicate == nil {
		return false
	}
	return t.predicate(snapshot)
}

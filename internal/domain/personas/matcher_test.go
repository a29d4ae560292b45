package personas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
)

func morningHindiSnapshot() *signals.Snapshot {
	return &signals.Snapshot{
		Temporal: signals.TemporalSignals{TimeOfDay: "morning", Language: "hi"},
	}
}

func TestMatchScoresSatisfiedOverTotal(t *testing.T) {
	catalog := NewCatalog([]Persona{
		{
			ID:       "half",
			Triggers: triggersFor("morning", "hindi_or_regional", "weekend", "charging"),
		},
	})

	// morning + hindi satisfied, weekend + charging not: 2/4 = 0.5
	result := Match(catalog, morningHindiSnapshot())
	require.False(t, result.Fallback)
	assert.Equal(t, "half", result.PersonaID)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
	assert.Equal(t, 4, result.TotalTriggers)
	assert.Equal(t, []string{"morning", "hindi_or_regional"}, result.SatisfiedTriggers)
}

func TestMatchTieGoesToFirstDefined(t *testing.T) {
	catalog := NewCatalog([]Persona{
		{ID: "first", Triggers: triggersFor("morning")},
		{ID: "second", Triggers: triggersFor("hindi_or_regional")},
	})

	// Both score 1.0; catalog order decides.
	result := Match(catalog, morningHindiSnapshot())
	assert.Equal(t, "first", result.PersonaID)
	assert.False(t, result.Fallback)
}

func TestMatchIsDeterministic(t *testing.T) {
	catalog := DefaultCatalog()
	snapshot := morningHindiSnapshot()
	snapshot.Questionnaire = &signals.QuestionnaireAnswers{Interests: []string{"spiritual"}}
	snapshot.Environment.Brightness = 0.2

	first := Match(catalog, snapshot)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Match(catalog, snapshot))
	}
}

func TestMatchBelowThresholdFallsBack(t *testing.T) {
	catalog := NewCatalog([]Persona{
		{ID: "picky", Triggers: triggersFor("morning", "weekend", "charging", "headphones_on", "low_battery")},
	})

	// 1/5 = 0.2, below the 0.4 threshold; computed confidence is preserved.
	result := Match(catalog, morningHindiSnapshot())
	assert.True(t, result.Fallback)
	assert.Equal(t, FallbackPersonaID, result.PersonaID)
	assert.InDelta(t, 0.2, result.Confidence, 1e-9)
}

func TestMatchEmptyCatalog(t *testing.T) {
	result := Match(NewCatalog(nil), morningHindiSnapshot())
	assert.True(t, result.Fallback)
	assert.Equal(t, FallbackPersonaID, result.PersonaID)
	assert.InDelta(t, 0.3, result.Confidence, 1e-9)

	result = Match(nil, morningHindiSnapshot())
	assert.True(t, result.Fallback)
}

func TestMatchSkipsZeroTriggerPersonas(t *testing.T) {
	catalog := NewCatalog([]Persona{
		{ID: "untriggered"},
		{ID: "scored", Triggers: triggersFor("morning")},
	})

	result := Match(catalog, morningHindiSnapshot())
	assert.Equal(t, "scored", result.PersonaID)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestMatchAllZeroTriggerCatalogFallsBack(t *testing.T) {
	catalog := NewCatalog([]Persona{
		{ID: "a"},
		{ID: "b"},
	})

	result := Match(catalog, morningHindiSnapshot())
	assert.True(t, result.Fallback)
	assert.InDelta(t, 0.3, result.Confidence, 1e-9)
}

func TestUnknownTriggerNeverFires(t *testing.T) {
	trigger := NewTrigger("no_such_trigger")
	assert.False(t, trigger.Satisfied(morningHindiSnapshot()))
	assert.False(t, KnownTrigger("no_such_trigger"))

	// A persona mixing known and unknown triggers scores only on the known hit.
	catalog := NewCatalog([]Persona{
		{ID: "mixed", Triggers: triggersFor("morning", "no_such_trigger")},
	})
	result := Match(catalog, morningHindiSnapshot())
	assert.Equal(t, "mixed", result.PersonaID)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestNilQuestionnaireTriggers(t *testing.T) {
	snapshot := morningHindiSnapshot()
	require.Nil(t, snapshot.Questionnaire)

	assert.False(t, NewTrigger("spiritual_interest").Satisfied(snapshot))
	assert.False(t, NewTrigger("student").Satisfied(snapshot))
}

func TestCatalogDuplicateIDFirstWins(t *testing.T) {
	catalog := NewCatalog([]Persona{
		{ID: "dup", Name: "first", Triggers: triggersFor("morning")},
		{ID: "dup", Name: "second", Triggers: triggersFor("night")},
	})

	require.Equal(t, 1, catalog.Len())
	p, ok := catalog.Get("dup")
	require.True(t, ok)
	assert.Equal(t, "first", p.Name)
}

func TestDefaultCatalogHasFallback(t *testing.T) {
	catalog := DefaultCatalog()
	fallback, ok := catalog.Get(FallbackPersonaID)
	require.True(t, ok)
	assert.Empty(t, fallback.Triggers)
	assert.NotEmpty(t, fallback.Suggestions)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/domain/personas"
	"github.com/BharatAdaptive/munimji-go/internal/domain/signals"
	"github.com/BharatAdaptive/munimji-go/internal/domain/suggestions"
)

func TestRecommendedModeConstraints(t *testing.T) {
	cases := []struct {
		name        string
		snapshot    signals.Snapshot
		wantMode    string
		wantSegment string
	}{
		{
			name:        "unconstrained device",
			snapshot:    signals.Snapshot{Device: signals.DeviceSignals{Class: "high_end"}},
			wantMode:    "standard",
			wantSegment: "general",
		},
		{
			name:        "low end device",
			snapshot:    signals.Snapshot{Device: signals.DeviceSignals{Class: "low_end"}},
			wantMode:    "lite",
			wantSegment: "lite_mode_user",
		},
		{
			name:        "data saver",
			snapshot:    signals.Snapshot{Network: signals.NetworkSignals{SaveData: true}},
			wantMode:    "lite",
			wantSegment: "lite_mode_user",
		},
		{
			name:        "power save",
			snapshot:    signals.Snapshot{Battery: signals.BatterySignals{PowerSave: true}},
			wantMode:    "lite",
			wantSegment: "lite_mode_user",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode, segment := recommendedMode(&tc.snapshot)
			assert.Equal(t, tc.wantMode, mode)
			assert.Equal(t, tc.wantSegment, segment)
		})
	}
}

func TestMatchReasoningVariants(t *testing.T) {
	matched := personas.MatchResult{
		PersonaID:         "morning_spiritual",
		Confidence:        0.75,
		SatisfiedTriggers: []string{"morning", "spiritual_interest", "hindi_or_regional"},
		TotalTriggers:     4,
	}
	lines := matchReasoning(matched)
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "morning_spiritual")
	assert.Contains(t, lines[0], "3 of 4")

	belowThreshold := personas.MatchResult{
		PersonaID:     personas.FallbackPersonaID,
		Confidence:    0.25,
		Fallback:      true,
		TotalTriggers: 4,
	}
	lines = matchReasoning(belowThreshold)
	assert.Contains(t, lines[0], "threshold")

	empty := personas.MatchResult{PersonaID: personas.FallbackPersonaID, Fallback: true}
	lines = matchReasoning(empty)
	assert.Contains(t, lines[0], "fallback")
}

func TestRankReasoningCountsAdjustments(t *testing.T) {
	prefs := intelligence.NewPreferences()
	prefs.LikedCategories = []string{"music"}
	prefs.DislikedCategories = []string{"utility"}
	prefs.PreferredSources = []string{"desi_beats"}

	candidates := []suggestions.Suggestion{
		{Title: "a", ContentType: "song", Source: "desi_beats"},
		{Title: "b", ContentType: "app"},
		{Title: "c", ContentType: "recipe"},
	}

	lines := rankReasoning(candidates, prefs)
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "boosted 1")
	assert.Contains(t, lines[1], "demoted 1")
	assert.Contains(t, lines[2], "nudged 1")
}

func TestRankReasoningSilentWithoutSignal(t *testing.T) {
	candidates := []suggestions.Suggestion{{Title: "a", ContentType: "song"}}
	assert.Empty(t, rankReasoning(candidates, intelligence.NewPreferences()))
}

package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// PersonalizationLevel buckets the engagement score.
type PersonalizationLevel string

const (
	LevelLow    PersonalizationLevel = "low"
	LevelMedium PersonalizationLevel = "medium"
	LevelHigh   PersonalizationLevel = "high"
)

// Summary is the derived view of a record handed to the orchestrator and
// the intelligence endpoint.
type Summary struct {
	FingerprintID        string               `json:"fingerprintId"`
	JourneyDay           int                  `json:"journeyDay"`
	Stage                Stage                `json:"stage"`
	Insights             []string             `json:"insights"`
	TopCategories        []string             `json:"topCategories"`
	TopContentTypes      []string             `json:"topContentTypes"`
	EngagementScore      float64              `json:"engagementScore"`
	PersonalizationLevel PersonalizationLevel `json:"personalizationLevel"`
	TotalEvents          int64                `json:"totalEvents"`
	TotalLikes           int                  `json:"totalLikes"`
	TotalDislikes        int                  `json:"totalDislikes"`
	LastScenario         string               `json:"lastScenario,omitempty"`
}

// BuildSummary derives the summary for a record at the given instant.
func BuildSummary(r *Record, now time.Time) *Summary {
	day := r.JourneyDayAt(now)
	score := EngagementScore(r.TotalEvents, r.TotalLikes, r.Preferences.SessionCount)

	return &Summary{
		FingerprintID:        r.FingerprintID,
		JourneyDay:           day,
		Stage:                StageForDay(day),
		Insights:             buildInsights(r),
		TopCategories:        topRecent(r.Preferences.LikedCategories, 3),
		TopContentTypes:      topRecent(r.Preferences.PreferredContentTypes, 3),
		EngagementScore:      score,
		PersonalizationLevel: levelFor(score),
		TotalEvents:          r.TotalEvents,
		TotalLikes:           r.TotalLikes,
		TotalDislikes:        r.TotalDislikes,
		LastScenario:         r.LastScenario,
	}
}

// EngagementScore combines event, like, and session volume. Each term is
// uncapped on its own; only the outer min bounds the result, so any
// single dimension can drive the score to 1.0.
func EngagementScore(totalEvents int64, totalLikes, sessionCount int) float64 {
	score := config.EngagementEventWeight*(float64(totalEvents)/config.EngagementEventScale) +
		config.EngagementLikeWeight*(float64(totalLikes)/config.EngagementLikeScale) +
		config.EngagementSessionWeight*(float64(sessionCount)/config.EngagementSessionScale)
	if score > 1.0 {
		return 1.0
	}
	return score
}

func levelFor(score float64) PersonalizationLevel {
	switch {
	case score <= 0.3:
		return LevelLow
	case score <= 0.7:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// buildInsights renders human-readable observations from the current
// preferences, strongest signal first, capped at MaxInsights. When there
// is no signal at all it falls back to a single still-learning line.
func buildInsights(r *Record) []string {
	p := r.Preferences
	var insights []string

	if len(p.LikedCategories) > 0 {
		insights = append(insights, fmt.Sprintf("Enjoys %s content", strings.Join(topRecent(p.LikedCategories, 3), ", ")))
	}
	if best, score := topAffinity(p.ScenarioAffinity); best != "" && score > 0 {
		insights = append(insights, fmt.Sprintf("Responds best to the %q scenario", best))
	}
	if len(p.PreferredContentTypes) > 0 {
		insights = append(insights, fmt.Sprintf("Prefers %s formats", strings.Join(topRecent(p.PreferredContentTypes, 2), " and ")))
	}
	if p.SessionCount > 0 {
		insights = append(insights, fmt.Sprintf("Typical session lasts about %.0f seconds", p.AvgSessionDuration))
	}
	if len(p.ActiveHours) > 0 {
		insights = append(insights, fmt.Sprintf("Usually active around %02d:00", p.ActiveHours[len(p.ActiveHours)-1]))
	}
	if len(p.DislikedCategories) > 0 {
		insights = append(insights, fmt.Sprintf("Avoids %s content", strings.Join(topRecent(p.DislikedCategories, 2), ", ")))
	}

	if len(insights) == 0 {
		return []string{"Still learning this user's preferences"}
	}
	if len(insights) > config.MaxInsights {
		insights = insights[:config.MaxInsights]
	}
	return insights
}

// topRecent returns up to n entries, most recent first.
func topRecent(list []string, n int) []string {
	out := make([]string, 0, n)
	for i := len(list) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, list[i])
	}
	return out
}

func topAffinity(affinity map[string]float64) (string, float64) {
	var best string
	var bestScore float64
	for id, score := range affinity {
		// Lexicographic tie-break keeps the insight text deterministic.
		if best == "" || score > bestScore || (score == bestScore && id < best) {
			best = id
			bestScore = score
		}
	}
	return best, bestScore
}

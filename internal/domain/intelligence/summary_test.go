package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementScoreSaturates(t *testing.T) {
	// 100 events, 20 likes, 10 sessions: every term at its scale,
	// 0.3 + 0.3 + 0.4 = 1.0 exactly.
	assert.InDelta(t, 1.0, EngagementScore(100, 20, 10), 1e-9)

	// Any single dimension can saturate the score on its own.
	assert.InDelta(t, 1.0, EngagementScore(1000, 0, 0), 1e-9)
}

func TestEngagementScorePartial(t *testing.T) {
	// 50 events, 5 likes, 2 sessions: 0.15 + 0.075 + 0.08 = 0.305.
	assert.InDelta(t, 0.305, EngagementScore(50, 5, 2), 1e-9)
	assert.Zero(t, EngagementScore(0, 0, 0))
}

func TestPersonalizationLevels(t *testing.T) {
	assert.Equal(t, LevelLow, levelFor(0))
	assert.Equal(t, LevelLow, levelFor(0.3))
	assert.Equal(t, LevelMedium, levelFor(0.31))
	assert.Equal(t, LevelMedium, levelFor(0.7))
	assert.Equal(t, LevelHigh, levelFor(0.71))
	assert.Equal(t, LevelHigh, levelFor(1.0))
}

func TestBuildSummaryHighEngagement(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	r := NewRecord("fp-sum", now.Add(-12*24*time.Hour))
	r.TotalEvents = 100
	r.TotalLikes = 20
	r.Preferences.SessionCount = 10
	r.LastScenario = "weekend_cook"

	s := BuildSummary(r, now)
	assert.Equal(t, 12, s.JourneyDay)
	assert.Equal(t, StageRegular, s.Stage)
	assert.InDelta(t, 1.0, s.EngagementScore, 1e-9)
	assert.Equal(t, LevelHigh, s.PersonalizationLevel)
	assert.Equal(t, "weekend_cook", s.LastScenario)
}

func TestBuildSummaryEmptyProfileStillLearning(t *testing.T) {
	now := time.Now().UTC()
	r := NewRecord("fp-new", now)

	s := BuildSummary(r, now)
	assert.Equal(t, StageNewcomer, s.Stage)
	assert.Equal(t, LevelLow, s.PersonalizationLevel)
	require.Len(t, s.Insights, 1)
	assert.Equal(t, "Still learning this user's preferences", s.Insights[0])
	assert.Empty(t, s.TopCategories)
}

func TestInsightsCappedAndOrdered(t *testing.T) {
	now := time.Now().UTC()
	r := NewRecord("fp-rich", now)
	r.Preferences.LikedCategories = []string{"music", "cooking", "entertainment"}
	r.Preferences.DislikedCategories = []string{"utility"}
	r.Preferences.PreferredContentTypes = []string{"song", "video"}
	r.Preferences.ActiveHours = []int{7, 21}
	r.Preferences.SessionCount = 4
	r.Preferences.AvgSessionDuration = 240
	r.Preferences.ScenarioAffinity = map[string]float64{"night_entertainment": 2.0, "weekend_cook": 1.0}

	s := BuildSummary(r, now)
	require.Len(t, s.Insights, 5, "six signals, capped at five")
	assert.Contains(t, s.Insights[0], "entertainment")
	assert.Contains(t, s.Insights[1], "night_entertainment")
}

func TestTopRecentMostRecentFirst(t *testing.T) {
	assert.Equal(t, []string{"d", "c", "b"}, topRecent([]string{"a", "b", "c", "d"}, 3))
	assert.Equal(t, []string{"a"}, topRecent([]string{"a"}, 3))
	assert.Empty(t, topRecent(nil, 3))
}

func TestTopAffinityTieBreaksLexicographically(t *testing.T) {
	best, score := topAffinity(map[string]float64{"b_persona": 2.0, "a_persona": 2.0, "c_persona": 1.0})
	assert.Equal(t, "a_persona", best)
	assert.InDelta(t, 2.0, score, 1e-9)
}

package intelligence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msAt(hour int) int64 {
	return time.Date(2026, 3, 14, hour, 30, 0, 0, time.Local).UnixMilli()
}

func TestLikeAddsCategoryAndClearsDislike(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventDislike, Category: "cooking", Timestamp: msAt(9)})
	require.True(t, p.HasDisliked("cooking"))

	Apply(p, Event{Type: EventLike, Category: "cooking", Timestamp: msAt(10)})
	assert.True(t, p.HasLiked("cooking"))
	assert.False(t, p.HasDisliked("cooking"), "a like clears the standing dislike")
}

func TestDislikeDoesNotClearLike(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventLike, Category: "music", Timestamp: msAt(9)})
	Apply(p, Event{Type: EventDislike, Category: "music", Timestamp: msAt(10)})

	// Mixed signal: both sets hold the category.
	assert.True(t, p.HasLiked("music"))
	assert.True(t, p.HasDisliked("music"))
}

func TestViewAndClickFeedContentTypes(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventView, ContentType: "video", Timestamp: msAt(9)})
	Apply(p, Event{Type: EventClick, ContentType: "song", Timestamp: msAt(9)})
	Apply(p, Event{Type: EventLike, ContentType: "recipe", Timestamp: msAt(9)})

	// Likes do not feed content types; only view and click do.
	assert.Equal(t, []string{"video", "song"}, p.PreferredContentTypes)
}

func TestSourceRuleCoversViewClickLike(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventView, Source: "khabar_lite", Timestamp: msAt(9)})
	Apply(p, Event{Type: EventClick, Source: "desi_beats", Timestamp: msAt(9)})
	Apply(p, Event{Type: EventLike, Source: "rasoi_ghar", Timestamp: msAt(9)})
	Apply(p, Event{Type: EventDislike, Source: "ignored", Timestamp: msAt(9)})

	assert.Equal(t, []string{"khabar_lite", "desi_beats", "rasoi_ghar"}, p.PreferredSources)
}

func TestBoundedListsEvictOldestFirst(t *testing.T) {
	p := NewPreferences()

	for i := 0; i < 8; i++ {
		Apply(p, Event{Type: EventView, ContentType: fmt.Sprintf("type%d", i), Timestamp: msAt(9)})
	}
	require.Len(t, p.PreferredContentTypes, 5)
	assert.Equal(t, []string{"type3", "type4", "type5", "type6", "type7"}, p.PreferredContentTypes)

	for i := 0; i < 7; i++ {
		Apply(p, Event{Type: EventClick, Source: fmt.Sprintf("src%d", i), Timestamp: msAt(9)})
	}
	require.Len(t, p.PreferredSources, 5)
	assert.Equal(t, "src2", p.PreferredSources[0])
}

func TestActiveHoursUniqueBounded(t *testing.T) {
	p := NewPreferences()

	for _, h := range []int{9, 9, 10, 11, 12, 13, 14, 15, 16, 17} {
		Apply(p, Event{Type: EventView, Timestamp: msAt(h)})
	}

	// 9 unique hours seen, capped at 8, oldest evicted.
	require.Len(t, p.ActiveHours, 8)
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17}, p.ActiveHours)
}

func TestScenarioAffinityDeltas(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventView, Scenario: "morning_spiritual", Timestamp: msAt(7)})
	Apply(p, Event{Type: EventClick, Scenario: "morning_spiritual", Timestamp: msAt(7)})
	Apply(p, Event{Type: EventLike, Scenario: "morning_spiritual", Timestamp: msAt(7)})
	Apply(p, Event{Type: EventDislike, Scenario: "morning_spiritual", Timestamp: msAt(7)})

	assert.InDelta(t, 2.5, p.ScenarioAffinity["morning_spiritual"], 1e-9)

	// A scenario tag on a neutral event type initializes the key at zero.
	Apply(p, Event{Type: EventShare, Scenario: "commuter_lite", Timestamp: msAt(8)})
	score, ok := p.ScenarioAffinity["commuter_lite"]
	require.True(t, ok)
	assert.Zero(t, score)
}

func TestSessionDurationIncrementalMean(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventSessionEnd, DurationSec: 100, Timestamp: msAt(9)})
	require.Equal(t, 1, p.SessionCount)
	assert.InDelta(t, 100.0, p.AvgSessionDuration, 1e-9)

	Apply(p, Event{Type: EventSessionEnd, DurationSec: 200, Timestamp: msAt(10)})
	require.Equal(t, 2, p.SessionCount)
	assert.InDelta(t, 150.0, p.AvgSessionDuration, 1e-9)

	Apply(p, Event{Type: EventSessionEnd, DurationSec: 60, Timestamp: msAt(11)})
	assert.InDelta(t, 120.0, p.AvgSessionDuration, 1e-9)

	// Zero duration session ends are ignored by the mean.
	Apply(p, Event{Type: EventSessionEnd, Timestamp: msAt(12)})
	assert.Equal(t, 3, p.SessionCount)
	assert.InDelta(t, 120.0, p.AvgSessionDuration, 1e-9)
}

func TestUnknownEventTypeOnlyTouchesHours(t *testing.T) {
	p := NewPreferences()

	Apply(p, Event{Type: EventType("mystery"), Category: "stuff", ContentType: "thing", Source: "somewhere", Timestamp: msAt(9)})

	assert.Empty(t, p.LikedCategories)
	assert.Empty(t, p.DislikedCategories)
	assert.Empty(t, p.PreferredContentTypes)
	assert.Empty(t, p.PreferredSources)
	assert.Equal(t, []int{9}, p.ActiveHours)
}

package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// failingJournal errors on every write to exercise backend failure paths.
type failingJournal struct{}

func (failingJournal) AppendEvents(string, []intelligence.Event) error {
	return errors.New("journal down")
}

func (failingJournal) RecordFeedback(string, string, intelligence.FeedbackPolarity) error {
	return errors.New("journal down")
}

func (failingJournal) SaveSnapshot(*intelligence.Record) error {
	return errors.New("journal down")
}

func TestGetOrCreateReturnsReadView(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	first, err := ms.GetOrCreate("fp-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	// Mutating the returned view must not leak into the store.
	first.TotalLikes = 99
	first.Preferences.LikedCategories = append(first.Preferences.LikedCategories, "music")

	second, err := ms.GetOrCreate("fp-1")
	require.NoError(t, err)
	assert.Zero(t, second.TotalLikes)
	assert.Empty(t, second.Preferences.LikedCategories)
	assert.Equal(t, first.FirstSeen, second.FirstSeen, "same underlying record")
}

func TestGetOrCreateRequiresID(t *testing.T) {
	ms := NewMemoryStore(nil, nil)
	_, err := ms.GetOrCreate("")
	assert.Error(t, err)
}

func TestAddEventsAppliesLearnerAndCounters(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	applied, err := ms.AddEvents("fp-2", []intelligence.Event{
		{Type: intelligence.EventLike, Category: "music", Source: "desi_beats"},
		{Type: intelligence.EventDislike, Category: "utility"},
		{Type: intelligence.EventView, ContentType: "song"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	record, err := ms.GetOrCreate("fp-2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), record.TotalEvents)
	assert.Equal(t, 1, record.TotalLikes)
	assert.Equal(t, 1, record.TotalDislikes)
	assert.True(t, record.Preferences.HasLiked("music"))
	assert.True(t, record.Preferences.HasDisliked("utility"))
	assert.Equal(t, []string{"song"}, record.Preferences.PreferredContentTypes)
}

func TestRecordFeedbackUpdatesGlobalTallies(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	require.NoError(t, ms.RecordFeedback("fp-a", "morning_spiritual", intelligence.FeedbackLike))
	require.NoError(t, ms.RecordFeedback("fp-b", "morning_spiritual", intelligence.FeedbackLike))
	require.NoError(t, ms.RecordFeedback("fp-a", "morning_spiritual", intelligence.FeedbackDislike))

	tallies := ms.PersonaFeedback()
	assert.Equal(t, intelligence.FeedbackCounts{Likes: 2, Dislikes: 1}, tallies["morning_spiritual"])

	// Feedback moves counters only; affinity belongs to the learner and
	// scenario matches.
	record, err := ms.GetOrCreate("fp-a")
	require.NoError(t, err)
	assert.Equal(t, 1, record.TotalLikes)
	assert.Equal(t, 1, record.TotalDislikes)
	assert.NotContains(t, record.Preferences.ScenarioAffinity, "morning_spiritual")
}

func TestRecordFeedbackValidation(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	assert.Error(t, ms.RecordFeedback("fp", "", intelligence.FeedbackLike))
	assert.Error(t, ms.RecordFeedback("fp", "p", intelligence.FeedbackPolarity("meh")))
	assert.Error(t, ms.RecordFeedback("", "p", intelligence.FeedbackLike))
}

func TestUpdateScenarioTracksHistory(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	require.NoError(t, ms.UpdateScenario("fp-3", "commuter_lite"))
	require.NoError(t, ms.UpdateScenario("fp-3", "night_entertainment"))

	record, err := ms.GetOrCreate("fp-3")
	require.NoError(t, err)
	assert.Equal(t, "night_entertainment", record.LastScenario)
	assert.Equal(t, []string{"commuter_lite", "night_entertainment"}, record.ScenarioHistory)
}

func TestUpdateScenarioAppliesMatchAffinity(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	require.NoError(t, ms.UpdateScenario("fp-4", "morning_spiritual"))
	require.NoError(t, ms.UpdateScenario("fp-4", "morning_spiritual"))
	require.NoError(t, ms.UpdateScenario("fp-4", "commuter_lite"))

	record, err := ms.GetOrCreate("fp-4")
	require.NoError(t, err)
	assert.InDelta(t, 2*config.AffinityMatchDelta, record.Preferences.ScenarioAffinity["morning_spiritual"], 1e-9)
	assert.InDelta(t, config.AffinityMatchDelta, record.Preferences.ScenarioAffinity["commuter_lite"], 1e-9)
}

func TestJournalFailurePropagates(t *testing.T) {
	ms := NewMemoryStore(failingJournal{}, nil)

	_, err := ms.GetOrCreate("fp-j")
	assert.Error(t, err)

	_, err = ms.AddEvents("fp-j", []intelligence.Event{{Type: intelligence.EventView}})
	assert.Error(t, err)

	assert.Error(t, ms.RecordFeedback("fp-j", "p", intelligence.FeedbackLike))
	assert.Error(t, ms.UpdateScenario("fp-j", "p"))
}

func TestConcurrentMutationsOnOneFingerprint(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	const workers = 16
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := ms.AddEvents("fp-hot", []intelligence.Event{
					{Type: intelligence.EventLike, Category: fmt.Sprintf("cat%d", w)},
				})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	record, err := ms.GetOrCreate("fp-hot")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), record.TotalEvents)
	assert.Equal(t, workers*perWorker, record.TotalLikes)
}

func TestCrossKeyIndependence(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	var wg sync.WaitGroup
	for k := 0; k < 8; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			id := fmt.Sprintf("fp-%d", k)
			for i := 0; i < 50; i++ {
				_, err := ms.AddEvents(id, []intelligence.Event{{Type: intelligence.EventView}})
				assert.NoError(t, err)
			}
		}(k)
	}
	wg.Wait()

	stats := ms.Stats()
	assert.Equal(t, 8, stats.Profiles)
	assert.Equal(t, int64(400), stats.TotalEvents)
}

func TestRehydrateSeedsProfilesAndTallies(t *testing.T) {
	ms := NewMemoryStore(nil, nil)

	seed := intelligence.NewRecord("fp-old", time.Now().UTC())
	seed.TotalLikes = 3
	ms.Rehydrate([]*intelligence.Record{seed}, map[string]intelligence.FeedbackCounts{
		"weekend_cook": {Likes: 5, Dislikes: 1},
	})

	record, err := ms.GetOrCreate("fp-old")
	require.NoError(t, err)
	assert.Equal(t, 3, record.TotalLikes)
	assert.Equal(t, intelligence.FeedbackCounts{Likes: 5, Dislikes: 1}, ms.PersonaFeedback()["weekend_cook"])
}

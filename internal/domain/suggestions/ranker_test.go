package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
)

func TestCategoryForKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "entertainment", CategoryFor("video"))
	assert.Equal(t, "music", CategoryFor("song"))
	assert.Equal(t, "cooking", CategoryFor("recipe"))
	assert.Equal(t, "education", CategoryFor("podcast"))
	assert.Equal(t, "reading", CategoryFor("article"))
	assert.Equal(t, "utility", CategoryFor("app"))
	assert.Equal(t, "general", CategoryFor("hologram"))
	assert.Equal(t, "general", CategoryFor(""))
}

func TestRankRenumbersOneToN(t *testing.T) {
	candidates := []Suggestion{
		{Title: "a", Priority: 7, ContentType: "video"},
		{Title: "b", Priority: 3, ContentType: "song"},
		{Title: "c", Priority: 5, ContentType: "recipe"},
	}

	ranked := Rank(candidates, intelligence.NewPreferences())
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"b", "c", "a"}, titles(ranked))
	for i, s := range ranked {
		assert.Equal(t, i+1, s.Priority)
	}
}

func TestRankLikedCategoryMovesUp(t *testing.T) {
	prefs := intelligence.NewPreferences()
	prefs.LikedCategories = []string{"music"}

	candidates := []Suggestion{
		{Title: "news", Priority: 1, ContentType: "article"},
		{Title: "bhajan", Priority: 2, ContentType: "song"},
	}

	// song: 2 − 2 = 0 beats article's 1.
	ranked := Rank(candidates, prefs)
	assert.Equal(t, []string{"bhajan", "news"}, titles(ranked))
}

func TestRankDislikedCategoryMovesDown(t *testing.T) {
	prefs := intelligence.NewPreferences()
	prefs.DislikedCategories = []string{"entertainment"}

	candidates := []Suggestion{
		{Title: "film", Priority: 1, ContentType: "video"},
		{Title: "recipe", Priority: 2, ContentType: "recipe"},
	}

	// video: 1 + 5 = 6 drops behind recipe's 2.
	ranked := Rank(candidates, prefs)
	assert.Equal(t, []string{"recipe", "film"}, titles(ranked))
}

func TestRankSourceMatchCaseInsensitive(t *testing.T) {
	prefs := intelligence.NewPreferences()
	prefs.PreferredSources = []string{"Desi_Beats"}

	candidates := []Suggestion{
		{Title: "other", Priority: 2, ContentType: "song", Source: "filmy_duniya"},
		{Title: "familiar", Priority: 2, ContentType: "song", Source: "desi_beats"},
	}

	// Source match applies once: 2 − 1 = 1 wins.
	ranked := Rank(candidates, prefs)
	assert.Equal(t, []string{"familiar", "other"}, titles(ranked))
}

func TestRankStableOnEqualScores(t *testing.T) {
	candidates := []Suggestion{
		{Title: "first", Priority: 2, ContentType: "video"},
		{Title: "second", Priority: 2, ContentType: "song"},
		{Title: "third", Priority: 2, ContentType: "recipe"},
	}

	ranked := Rank(candidates, intelligence.NewPreferences())
	assert.Equal(t, []string{"first", "second", "third"}, titles(ranked))
}

func TestRankMixedSignalIsAdditive(t *testing.T) {
	prefs := intelligence.NewPreferences()
	prefs.LikedCategories = []string{"music"}
	prefs.DislikedCategories = []string{"music"}

	candidates := []Suggestion{
		{Title: "neutral", Priority: 4, ContentType: "article"},
		{Title: "mixed", Priority: 2, ContentType: "song"},
	}

	// song: 2 − 2 + 5 = 5 falls behind article's 4.
	ranked := Rank(candidates, prefs)
	assert.Equal(t, []string{"neutral", "mixed"}, titles(ranked))
}

func TestRankNilPrefsAndEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, nil))

	candidates := []Suggestion{
		{Title: "b", Priority: 9, ContentType: "video"},
		{Title: "a", Priority: 1, ContentType: "song"},
	}
	ranked := Rank(candidates, nil)
	assert.Equal(t, []string{"a", "b"}, titles(ranked))
}

func titles(list []Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}

package suggestions

import (
	"sort"
	"strings"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// contentTypeCategories maps a candidate's content type onto the coarse
// category space the learner uses. Unknown types fall back to "general".
var contentTypeCategories = map[string]string{
	"video":   "entertainment",
	"song":    "music",
	"recipe":  "cooking",
	"podcast": "education",
	"article": "reading",
	"app":     "utility",
}

// CategoryFor returns the coarse category for a content type.
func CategoryFor(contentType string) string {
	if category, ok := contentTypeCategories[contentType]; ok {
		return category
	}
	return "general"
}

// Rank reorders candidates by learned preference and renumbers their
// priorities 1..N. The sort is stable: candidates with equal adjusted
// scores keep their input order. The input slice is not modified.
func Rank(candidates []Suggestion, prefs *intelligence.Preferences) []Suggestion {
	return renumber(stableByScore(candidates, prefs))
}

// stableByScore sorts candidate/score pairs together so scores stay
// aligned with their candidates through the permutation.
func stableByScore(candidates []Suggestion, prefs *intelligence.Preferences) []Suggestion {
	type scored struct {
		s     Suggestion
		score int
	}
	items := make([]scored, len(candidates))
	for i, candidate := range candidates {
		items[i] = scored{s: candidate, score: adjustedScore(candidate, prefs)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score < items[j].score
	})
	out := make([]Suggestion, len(items))
	for i, item := range items {
		out[i] = item.s
	}
	return out
}

// adjustedScore starts from the candidate's priority and applies the
// preference deltas. Lower means shown first. Liked and disliked can
// both apply when a category carries mixed signal; the net is additive.
func adjustedScore(candidate Suggestion, prefs *intelligence.Preferences) int {
	score := candidate.Priority
	if prefs == nil {
		return score
	}

	category := CategoryFor(candidate.ContentType)
	if prefs.HasLiked(category) {
		score += config.RankLikedDelta
	}
	if prefs.HasDisliked(category) {
		score += config.RankDislikedDelta
	}
	for _, source := range prefs.PreferredSources {
		if strings.EqualFold(source, candidate.Source) {
			score += config.RankSourceDelta
			break
		}
	}
	return score
}

// renumber rewrites priorities 1..N in final order; no other field changes.
func renumber(ranked []Suggestion) []Suggestion {
	for i := range ranked {
		ranked[i].Priority = i + 1
	}
	return ranked
}

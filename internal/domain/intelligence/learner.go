package intelligence

import (
	"time"

	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// Apply folds one event into the preference record. Rules fire
// independently; a single event may trigger several of them. The store
// applies this under the record's lock, in event order.
func Apply(p *Preferences, ev Event) {
	switch ev.Type {
	case EventLike:
		if ev.Category != "" {
			if !p.HasLiked(ev.Category) {
				p.LikedCategories = append(p.LikedCategories, ev.Category)
			}
			// A like clears a standing dislike, but not the other way around.
			if p.HasDisliked(ev.Category) {
				p.DislikedCategories = removeString(p.DislikedCategories, ev.Category)
			}
		}
	case EventDislike:
		if ev.Category != "" && !p.HasDisliked(ev.Category) {
			p.DislikedCategories = append(p.DislikedCategories, ev.Category)
		}
	}

	if (ev.Type == EventView || ev.Type == EventClick) && ev.ContentType != "" {
		p.PreferredContentTypes = appendBounded(p.PreferredContentTypes, ev.ContentType, config.ContentTypeCap)
	}

	if (ev.Type == EventView || ev.Type == EventClick || ev.Type == EventLike) && ev.Source != "" {
		p.PreferredSources = appendBounded(p.PreferredSources, ev.Source, config.PreferredSourceCap)
	}

	if ev.Scenario != "" {
		if _, ok := p.ScenarioAffinity[ev.Scenario]; !ok {
			p.ScenarioAffinity[ev.Scenario] = 0
		}
		switch ev.Type {
		case EventLike, EventClick, EventView:
			p.ScenarioAffinity[ev.Scenario] += config.AffinityPositiveDelta
		case EventDislike:
			p.ScenarioAffinity[ev.Scenario] += config.AffinityNegativeDelta
		}
	}

	p.ActiveHours = appendHour(p.ActiveHours, hourOf(ev.Timestamp))

	if ev.Type == EventSessionEnd && ev.DurationSec > 0 {
		// Incremental mean with the pre-update session count.
		n := float64(p.SessionCount)
		p.AvgSessionDuration = (p.AvgSessionDuration*n + ev.DurationSec) / (n + 1)
		p.SessionCount++
	}
}

// hourOf derives the local hour (0-23) from an epoch-millisecond timestamp.
func hourOf(timestampMS int64) int {
	return time.UnixMilli(timestampMS).Hour()
}

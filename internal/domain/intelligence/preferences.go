package intelligence

import "github.com/BharatAdaptive/munimji-go/pkg/config"

// Preferences is the derived, mutable preference state for one user.
// The bounded lists never exceed their configured caps; insertion always
// evicts the oldest entry, never the lowest-scored one.
type Preferences struct {
	LikedCategories       []string           `json:"likedCategories"`
	DislikedCategories    []string           `json:"dislikedCategories"`
	PreferredContentTypes []string           `json:"preferredContentTypes"`
	PreferredSources      []string           `json:"preferredSources"`
	ActiveHours           []int              `json:"activeHours"`
	AvgSessionDuration    float64            `json:"avgSessionDuration"`
	SessionCount          int                `json:"sessionCount"`
	ScenarioAffinity      map[string]float64 `json:"scenarioAffinity"`
}

// NewPreferences returns a zero-state preference record.
func NewPreferences() *Preferences {
	return &Preferences{
		LikedCategories:       []string{},
		DislikedCategories:    []string{},
		PreferredContentTypes: []string{},
		PreferredSources:      []string{},
		ActiveHours:           []int{},
		ScenarioAffinity:      make(map[string]float64),
	}
}

// HasLiked reports whether the category is in the liked set.
func (p *Preferences) HasLiked(category string) bool {
	return containsString(p.LikedCategories, category)
}

// HasDisliked reports whether the category is in the disliked set.
// A category may be in both sets at once; that is mixed signal, not an error.
func (p *Preferences) HasDisliked(category string) bool {
	return containsString(p.DislikedCategories, category)
}

// appendBounded appends value and evicts the oldest entry beyond cap.
func appendBounded(list []string, value string, cap int) []string {
	list = append(list, value)
	if len(list) > cap {
		list = list[len(list)-cap:]
	}
	return list
}

// appendHour adds an hour (0-23) to the active-hours set, keeping
// insertion order, uniqueness, and the configured cap.
func appendHour(hours []int, hour int) []int {
	for _, h := range hours {
		if h == hour {
			return hours
		}
	}
	hours = append(hours, hour)
	if len(hours) > config.ActiveHourCap {
		hours = hours[len(hours)-config.ActiveHourCap:]
	}
	return hours
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a deep copy safe to hand to callers as a read view.
func (p *Preferences) Clone() *Preferences {
	if p == nil {
		return NewPreferences()
	}
	clone := &Preferences{
		LikedCategories:       append([]string{}, p.LikedCategories...),
		DislikedCategories:    append([]string{}, p.DislikedCategories...),
		PreferredContentTypes: append([]string{}, p.PreferredContentTypes...),
		PreferredSources:      append([]string{}, p.PreferredSources...),
		ActiveHours:           append([]int{}, p.ActiveHours...),
		AvgSessionDuration:    p.AvgSessionDuration,
		SessionCount:          p.SessionCount,
		ScenarioAffinity:      make(map[string]float64, len(p.ScenarioAffinity)),
	}
	for k, v := range p.ScenarioAffinity {
		clone.ScenarioAffinity[k] = v
	}
	return clone
}

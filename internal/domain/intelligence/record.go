package intelligence

import (
	"time"

	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// Record is the per-fingerprint intelligence state. Created lazily on
// first reference; never deleted by the kernel. All mutation happens
// through the store's operations; callers only see deep copies.
type Record struct {
	FingerprintID string    `json:"fingerprintId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	FirstSeen     time.Time `json:"firstSeen"`

	// RecentEvents is a ring of the last RecentEventCap events, oldest
	// evicted first. TotalEvents keeps counting past the cap.
	RecentEvents []Event `json:"recentEvents"`
	TotalEvents  int64   `json:"totalEvents"`

	Preferences *Preferences `json:"preferences"`

	TotalLikes    int `json:"totalLikes"`
	TotalDislikes int `json:"totalDislikes"`

	LastScenario    string   `json:"lastScenario,omitempty"`
	ScenarioHistory []string `json:"scenarioHistory"`

	JourneyDay int `json:"journeyDay"`
}

// NewRecord creates a zero-state record with first contact anchored at now.
func NewRecord(fingerprintID string, now time.Time) *Record {
	return &Record{
		FingerprintID:   fingerprintID,
		CreatedAt:       now,
		UpdatedAt:       now,
		FirstSeen:       now,
		RecentEvents:    []Event{},
		Preferences:     NewPreferences(),
		ScenarioHistory: []string{},
	}
}

// AppendEvent pushes one event into the ring buffer, evicting the oldest
// beyond the cap, and bumps the unbounded total counter.
func (r *Record) AppendEvent(ev Event) {
	r.RecentEvents = append(r.RecentEvents, ev)
	if len(r.RecentEvents) > config.RecentEventCap {
		r.RecentEvents = r.RecentEvents[len(r.RecentEvents)-config.RecentEventCap:]
	}
	r.TotalEvents++
}

// RecordScenario sets the last-matched persona and appends it to the
// bounded scenario history.
func (r *Record) RecordScenario(personaID string) {
	r.LastScenario = personaID
	r.ScenarioHistory = append(r.ScenarioHistory, personaID)
	if len(r.ScenarioHistory) > config.ScenarioHistoryCap {
		r.ScenarioHistory = r.ScenarioHistory[len(r.ScenarioHistory)-config.ScenarioHistoryCap:]
	}
}

// JourneyDayAt computes whole elapsed days since first contact,
// truncating rather than rounding.
func (r *Record) JourneyDayAt(now time.Time) int {
	if now.Before(r.FirstSeen) {
		return 0
	}
	return int(now.Sub(r.FirstSeen) / (24 * time.Hour))
}

// Clone returns a deep copy safe to hand to callers as a read view.
func (r *Record) Clone() *Record {
	clone := *r
	clone.RecentEvents = append([]Event{}, r.RecentEvents...)
	clone.ScenarioHistory = append([]string{}, r.ScenarioHistory...)
	clone.Preferences = r.Preferences.Clone()
	return &clone
}

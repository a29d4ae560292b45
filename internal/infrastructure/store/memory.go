// Package store provides the in-memory profile store backing the
// personalization engine, with optional write-through journaling.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// Journal persists profile mutations as they happen. Implementations must be
// safe for concurrent use; the store serializes calls per fingerprint.
type Journal interface {
	AppendEvents(fingerprintID string, events []intelligence.Event) error
	RecordFeedback(fingerprintID, personaID string, polarity intelligence.FeedbackPolarity) error
	SaveSnapshot(record *intelligence.Record) error
}

// entry pairs a profile record with its own mutex so mutations for one
// fingerprint never block another.
type entry struct {
	mu     sync.Mutex
	record *intelligence.Record
}

// MemoryStore implements intelligence.Store with per-fingerprint locking.
type MemoryStore struct {
	entries map[string]*entry
	mu      sync.RWMutex

	feedback   map[string]intelligence.FeedbackCounts
	feedbackMu sync.Mutex

	journal Journal
	logger  *logging.ChanneledLogger
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory profile store. The journal may be
// nil, in which case mutations are kept in memory only.
func NewMemoryStore(journal Journal, logger *logging.ChanneledLogger) *MemoryStore {
	if logger != nil {
		logger.Profile().Info("Initializing in-memory profile store", "journaled", journal != nil)
	}
	return &MemoryStore{
		entries:  make(map[string]*entry),
		feedback: make(map[string]intelligence.FeedbackCounts),
		journal:  journal,
		logger:   logger,
		now:      time.Now,
	}
}

// Rehydrate seeds the store from journaled snapshots and feedback tallies.
// It is meant to run once at startup, before the store takes traffic.
func (ms *MemoryStore) Rehydrate(records []*intelligence.Record, tallies map[string]intelligence.FeedbackCounts) {
	ms.mu.Lock()
	for _, r := range records {
		if r == nil || r.FingerprintID == "" {
			continue
		}
		ms.entries[r.FingerprintID] = &entry{record: r.Clone()}
	}
	ms.mu.Unlock()

	ms.feedbackMu.Lock()
	for id, counts := range tallies {
		ms.feedback[id] = counts
	}
	ms.feedbackMu.Unlock()

	if ms.logger != nil {
		ms.logger.Profile().Info("Profile store rehydrated", "profiles", len(records), "personas", len(tallies))
	}
}

// getOrCreateEntry returns the entry for a fingerprint, creating it if missing.
func (ms *MemoryStore) getOrCreateEntry(fingerprintID string) (*entry, bool) {
	ms.mu.RLock()
	e, ok := ms.entries[fingerprintID]
	ms.mu.RUnlock()
	if ok {
		return e, false
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if e, ok = ms.entries[fingerprintID]; ok {
		return e, false
	}
	e = &entry{record: intelligence.NewRecord(fingerprintID, ms.now().UTC())}
	ms.entries[fingerprintID] = e
	if ms.logger != nil {
		ms.logger.WithFingerprint(logging.ChannelProfile, fingerprintID).Debug("Profile created")
	}
	return e, true
}

// GetOrCreate returns a read view of the profile for a fingerprint, creating
// an empty profile on first sight.
func (ms *MemoryStore) GetOrCreate(fingerprintID string) (*intelligence.Record, error) {
	if fingerprintID == "" {
		return nil, fmt.Errorf("fingerprint id is required")
	}
	e, created := ms.getOrCreateEntry(fingerprintID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if created && ms.journal != nil {
		if err := ms.journal.SaveSnapshot(e.record); err != nil {
			return nil, fmt.Errorf("failed to journal new profile: %w", err)
		}
	}
	return e.record.Clone(), nil
}

// AddEvents applies a batch of events to a profile: each event is appended to
// the recent ring and run through the preference learner, in order. Returns
// the number of events applied.
func (ms *MemoryStore) AddEvents(fingerprintID string, events []intelligence.Event) (int, error) {
	if fingerprintID == "" {
		return 0, fmt.Errorf("fingerprint id is required")
	}
	if len(events) == 0 {
		return 0, nil
	}
	start := ms.now()
	e, _ := ms.getOrCreateEntry(fingerprintID)

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ev := range events {
		e.record.AppendEvent(ev)
		intelligence.Apply(e.record.Preferences, ev)
		switch ev.Type {
		case intelligence.EventLike:
			e.record.TotalLikes++
		case intelligence.EventDislike:
			e.record.TotalDislikes++
		}
	}
	e.record.UpdatedAt = ms.now().UTC()

	if ms.journal != nil {
		if err := ms.journal.AppendEvents(fingerprintID, events); err != nil {
			return 0, fmt.Errorf("failed to journal events: %w", err)
		}
		if err := ms.journal.SaveSnapshot(e.record); err != nil {
			return 0, fmt.Errorf("failed to journal profile snapshot: %w", err)
		}
	}

	if ms.logger != nil {
		ms.logger.WithFingerprint(logging.ChannelProfile, fingerprintID).Debug("Events applied",
			"count", len(events), "duration", time.Since(start))
	}
	return len(events), nil
}

// RecordFeedback registers an explicit like or dislike against a persona,
// updating both the per-profile counters and the global per-persona tallies.
func (ms *MemoryStore) RecordFeedback(fingerprintID, personaID string, polarity intelligence.FeedbackPolarity) error {
	if fingerprintID == "" {
		return fmt.Errorf("fingerprint id is required")
	}
	if personaID == "" {
		return fmt.Errorf("persona id is required")
	}
	if !polarity.Valid() {
		return fmt.Errorf("invalid feedback polarity %q", polarity)
	}
	e, _ := ms.getOrCreateEntry(fingerprintID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if polarity == intelligence.FeedbackDislike {
		e.record.TotalDislikes++
	} else {
		e.record.TotalLikes++
	}
	e.record.UpdatedAt = ms.now().UTC()

	ms.feedbackMu.Lock()
	counts := ms.feedback[personaID]
	if polarity == intelligence.FeedbackLike {
		counts.Likes++
	} else {
		counts.Dislikes++
	}
	ms.feedback[personaID] = counts
	ms.feedbackMu.Unlock()

	if ms.journal != nil {
		if err := ms.journal.RecordFeedback(fingerprintID, personaID, polarity); err != nil {
			return fmt.Errorf("failed to journal feedback: %w", err)
		}
		if err := ms.journal.SaveSnapshot(e.record); err != nil {
			return fmt.Errorf("failed to journal profile snapshot: %w", err)
		}
	}
	return nil
}

// UpdateScenario records a new matched scenario on the profile's history and
// bumps the matched persona's affinity by the match increment.
func (ms *MemoryStore) UpdateScenario(fingerprintID, personaID string) error {
	if fingerprintID == "" {
		return fmt.Errorf("fingerprint id is required")
	}
	e, _ := ms.getOrCreateEntry(fingerprintID)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.record.RecordScenario(personaID)
	if e.record.Preferences.ScenarioAffinity == nil {
		e.record.Preferences.ScenarioAffinity = make(map[string]float64)
	}
	e.record.Preferences.ScenarioAffinity[personaID] += config.AffinityMatchDelta
	e.record.UpdatedAt = ms.now().UTC()

	if ms.journal != nil {
		if err := ms.journal.SaveSnapshot(e.record); err != nil {
			return fmt.Errorf("failed to journal profile snapshot: %w", err)
		}
	}
	return nil
}

// JourneyDay reports how many whole days have passed since the profile was
// first seen.
func (ms *MemoryStore) JourneyDay(fingerprintID string) (int, error) {
	if fingerprintID == "" {
		return 0, fmt.Errorf("fingerprint id is required")
	}
	e, _ := ms.getOrCreateEntry(fingerprintID)

	e.mu.Lock()
	defer e.mu.Unlock()
	day := e.record.JourneyDayAt(ms.now().UTC())
	e.record.JourneyDay = day
	return day, nil
}

// Summarize builds the intelligence summary for a profile.
func (ms *MemoryStore) Summarize(fingerprintID string) (*intelligence.Summary, error) {
	if fingerprintID == "" {
		return nil, fmt.Errorf("fingerprint id is required")
	}
	e, _ := ms.getOrCreateEntry(fingerprintID)

	e.mu.Lock()
	defer e.mu.Unlock()
	return intelligence.BuildSummary(e.record, ms.now().UTC()), nil
}

// PersonaFeedback returns a copy of the global per-persona feedback tallies.
func (ms *MemoryStore) PersonaFeedback() map[string]intelligence.FeedbackCounts {
	ms.feedbackMu.Lock()
	defer ms.feedbackMu.Unlock()
	out := make(map[string]intelligence.FeedbackCounts, len(ms.feedback))
	for id, counts := range ms.feedback {
		out[id] = counts
	}
	return out
}

// Stats reports aggregate store counters for the ops pulse.
func (ms *MemoryStore) Stats() intelligence.StoreStats {
	ms.mu.RLock()
	ids := make([]*entry, 0, len(ms.entries))
	for _, e := range ms.entries {
		ids = append(ids, e)
	}
	ms.mu.RUnlock()

	stats := intelligence.StoreStats{Profiles: len(ids)}
	for _, e := range ids {
		e.mu.Lock()
		stats.TotalEvents += e.record.TotalEvents
		stats.TotalLikes += e.record.TotalLikes
		e.mu.Unlock()
	}
	return stats
}

package intelligence

// FeedbackCounts is the global per-persona like/dislike aggregate,
// maintained independently of the per-event learning path.
type FeedbackCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// StoreStats is a coarse snapshot of store volume for the ops pulse.
type StoreStats struct {
	Profiles    int   `json:"profiles"`
	TotalEvents int64 `json:"totalEvents"`
	TotalLikes  int   `json:"totalLikes"`
}

// Store is the keyed per-user intelligence store. Implementations must
// serialize mutating operations per fingerprint id; operations on
// different ids must not block one another. All returned records and
// summaries are read views; callers never hold a mutable reference.
//
// A store backed by an external system may fail; such failures propagate
// to the caller rather than being masked with a fresh empty profile.
type Store interface {
	// GetOrCreate returns the record for the fingerprint, creating a
	// zero-state one with first-seen = now if none exists. Idempotent.
	GetOrCreate(fingerprintID string) (*Record, error)

	// AddEvents appends the events to the ring buffer in order, folds
	// each through the learner, and returns the number applied.
	AddEvents(fingerprintID string, events []Event) (int, error)

	// RecordFeedback bumps the record's cumulative like/dislike counter
	// and the global per-persona aggregate. Both paths run even when the
	// same feedback also arrives as an event; there is no dedup.
	RecordFeedback(fingerprintID, personaID string, polarity FeedbackPolarity) error

	// UpdateScenario sets the last-matched persona, appends to the
	// bounded scenario history, and applies the fixed match affinity
	// increment to that persona's score.
	UpdateScenario(fingerprintID, personaID string) error

	// JourneyDay computes and persists whole days since first contact.
	JourneyDay(fingerprintID string) (int, error)

	// Summarize derives the intelligence summary for the fingerprint.
	Summarize(fingerprintID string) (*Summary, error)

	// PersonaFeedback returns a copy of the global per-persona
	// like/dislike aggregates.
	PersonaFeedback() map[string]FeedbackCounts

	// Stats reports coarse volume counters.
	Stats() StoreStats
}

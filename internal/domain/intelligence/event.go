// Package intelligence holds the per-user learning kernel: observed
// events, derived preferences, the incremental learner, and the
// intelligence record each fingerprint accumulates over time.
package intelligence

// EventType enumerates the observed user event kinds. Unknown types are
// accepted and counted but trigger no learning rules.
type EventType string

const (
	EventView             EventType = "view"
	EventClick            EventType = "click"
	EventLike             EventType = "like"
	EventDislike          EventType = "dislike"
	EventShare            EventType = "share"
	EventPurchase         EventType = "purchase"
	EventSessionStart     EventType = "session_start"
	EventSessionEnd       EventType = "session_end"
	EventSuggestionAction EventType = "suggestion_action"
)

// Event is one observed user interaction. Append-only; never mutated
// after creation. Timestamp is epoch milliseconds.
type Event struct {
	Type        EventType      `json:"type"`
	Name        string         `json:"name"`
	Category    string         `json:"category,omitempty"`
	ContentType string         `json:"contentType,omitempty"`
	Source      string         `json:"source,omitempty"`
	Scenario    string         `json:"scenario,omitempty"`
	Timestamp   int64          `json:"timestamp"`
	DurationSec float64        `json:"durationSec,omitempty"`
	Value       float64        `json:"value,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// FeedbackPolarity is the direction of explicit persona feedback.
type FeedbackPolarity string

const (
	FeedbackLike    FeedbackPolarity = "like"
	FeedbackDislike FeedbackPolarity = "dislike"
)

// Valid reports whether the polarity is one of the two accepted values.
func (p FeedbackPolarity) Valid() bool {
	return p == FeedbackLike || p == FeedbackDislike
}

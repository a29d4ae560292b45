// Package profiles provides the SQL-backed journal for profile mutations.
//
// The journal is a write-through record of everything the in-memory store
// applies: raw events, persona feedback, and the latest profile snapshot.
// Reads during normal operation are served from memory; the journal exists
// so profiles survive restarts and can be inspected offline.
package profiles

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/persistence/database"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/security"
)

const schema = `
CREATE TABLE IF NOT EXISTS profile_events (
	id TEXT PRIMARY KEY,
	fingerprint_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	name TEXT,
	category TEXT,
	content_type TEXT,
	source TEXT,
	scenario TEXT,
	duration_sec REAL,
	value REAL,
	metadata TEXT,
	occurred_at INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profile_events_fingerprint ON profile_events(fingerprint_id);

CREATE TABLE IF NOT EXISTS persona_feedback (
	id TEXT PRIMARY KEY,
	fingerprint_id TEXT NOT NULL,
	persona_id TEXT NOT NULL,
	polarity TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_persona_feedback_persona ON persona_feedback(persona_id);

CREATE TABLE IF NOT EXISTS profile_snapshots (
	fingerprint_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLJournalRepository persists profile mutations to the database.
type SQLJournalRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLJournalRepository creates the repository and ensures the schema exists.
func NewSQLJournalRepository(db *database.DB, logger *logging.ChanneledLogger) (*SQLJournalRepository, error) {
	start := time.Now()
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	if logger != nil {
		logger.Store().Info("Journal schema ready", "duration", time.Since(start))
	}
	return &SQLJournalRepository{db: db, logger: logger}, nil
}

// AppendEvents writes a batch of events in a single transaction.
func (r *SQLJournalRepository) AppendEvents(fingerprintID string, events []intelligence.Event) error {
	if len(events) == 0 {
		return nil
	}
	const query = `
		INSERT INTO profile_events (id, fingerprint_id, event_type, name, category, content_type, source, scenario, duration_sec, value, metadata, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin event insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, ev := range events {
		var metadata any
		if len(ev.Metadata) > 0 {
			raw, err := json.Marshal(ev.Metadata)
			if err != nil {
				return fmt.Errorf("failed to encode event metadata: %w", err)
			}
			metadata = string(raw)
		}
		if _, err := stmt.Exec(
			security.GenerateULID(),
			fingerprintID,
			string(ev.Type),
			nullableString(ev.Name),
			nullableString(ev.Category),
			nullableString(ev.ContentType),
			nullableString(ev.Source),
			nullableString(ev.Scenario),
			ev.DurationSec,
			ev.Value,
			metadata,
			ev.Timestamp,
			createdAt,
		); err != nil {
			return fmt.Errorf("failed to store event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event insert: %w", err)
	}

	database.CheckAndLogSlowQuery(r.logger, "INSERT profile_events", time.Since(start))
	return nil
}

// RecordFeedback writes a persona like or dislike row.
func (r *SQLJournalRepository) RecordFeedback(fingerprintID, personaID string, polarity intelligence.FeedbackPolarity) error {
	const query = `
		INSERT INTO persona_feedback (id, fingerprint_id, persona_id, polarity, created_at)
		VALUES (?, ?, ?, ?, ?)`

	start := time.Now()
	_, err := r.db.Exec(query,
		security.GenerateULID(),
		fingerprintID,
		personaID,
		string(polarity),
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to store persona feedback: %w", err)
	}

	database.CheckAndLogSlowQuery(r.logger, "INSERT persona_feedback", time.Since(start))
	return nil
}

// SaveSnapshot upserts the full profile record as JSON.
func (r *SQLJournalRepository) SaveSnapshot(record *intelligence.Record) error {
	const query = `
		INSERT INTO profile_snapshots (fingerprint_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(fingerprint_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode profile snapshot: %w", err)
	}

	start := time.Now()
	if _, err := r.db.Exec(query,
		record.FingerprintID,
		string(payload),
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	); err != nil {
		return fmt.Errorf("failed to store profile snapshot: %w", err)
	}

	database.CheckAndLogSlowQuery(r.logger, "UPSERT profile_snapshots", time.Since(start))
	return nil
}

// LoadSnapshots reads every persisted profile record, most useful at startup
// to rehydrate the in-memory store.
func (r *SQLJournalRepository) LoadSnapshots() ([]*intelligence.Record, error) {
	const query = `SELECT payload FROM profile_snapshots`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile snapshots: %w", err)
	}
	defer rows.Close()

	var records []*intelligence.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan profile snapshot: %w", err)
		}
		var record intelligence.Record
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("failed to decode profile snapshot: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile snapshots: %w", err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SELECT profile_snapshots", time.Since(start))
	return records, nil
}

// FeedbackTallies aggregates likes and dislikes per persona from the journal.
func (r *SQLJournalRepository) FeedbackTallies() (map[string]intelligence.FeedbackCounts, error) {
	const query = `SELECT persona_id, polarity, COUNT(*) FROM persona_feedback GROUP BY persona_id, polarity`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback tallies: %w", err)
	}
	defer rows.Close()

	tallies := make(map[string]intelligence.FeedbackCounts)
	for rows.Next() {
		var personaID, polarity string
		var count int
		if err := rows.Scan(&personaID, &polarity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan feedback tally: %w", err)
		}
		counts := tallies[personaID]
		if polarity == string(intelligence.FeedbackLike) {
			counts.Likes += count
		} else {
			counts.Dislikes += count
		}
		tallies[personaID] = counts
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback tallies: %w", err)
	}

	database.CheckAndLogSlowQuery(r.logger, "SELECT persona_feedback tallies", time.Since(start))
	return tallies, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

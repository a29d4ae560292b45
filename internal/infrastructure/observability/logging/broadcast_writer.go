// Package logging provides the custom io.Writer for live log streaming.
package logging

import (
	"encoding/json"
	"log/slog"
	"time"
)

// BroadcastWriter is an io.Writer that intercepts structured log lines
// and forwards them to the LogBroadcaster for live streaming.
type BroadcastWriter struct {
	broadcaster *LogBroadcaster
}

// NewBroadcastWriter creates a writer bound to the singleton broadcaster.
func NewBroadcastWriter() *BroadcastWriter {
	return &BroadcastWriter{
		broadcaster: GetBroadcaster(),
	}
}

// Write parses the incoming JSON log line into a LogEntry and submits it
// for distribution. Non-JSON lines are reported, not dropped silently.
func (w *BroadcastWriter) Write(p []byte) (n int, err error) {
	var rawLog map[string]any
	if err := json.Unmarshal(p, &rawLog); err != nil {
		go w.broadcaster.SubmitLog(LogEntry{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Level:     slog.LevelError.String(),
			Channel:   string(ChannelSystem),
			Message:   "broadcast_writer: failed to parse incoming log message",
		})
		return len(p), nil
	}

	entry := LogEntry{
		Timestamp:     getString(rawLog, "time"),
		Level:         getString(rawLog, "level"),
		Channel:       getString(rawLog, "channel"),
		Message:       getString(rawLog, "msg"),
		FingerprintID: getString(rawLog, "fingerprintId"),
	}

	// Submitted in a goroutine so a slow consumer never blocks a log call.
	go w.broadcaster.SubmitLog(entry)

	return len(p), nil
}

func getString(data map[string]any, key string) string {
	if val, ok := data[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return ""
}

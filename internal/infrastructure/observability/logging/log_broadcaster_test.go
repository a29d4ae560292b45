package logging

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEntry(t *testing.T, client *Client) LogEntry {
	t.Helper()
	select {
	case message, ok := <-client.Channel:
		require.True(t, ok, "client channel closed")
		var entry LogEntry
		require.NoError(t, json.Unmarshal(message, &entry))
		return entry
	case <-time.After(2 * time.Second):
		t.Fatal("no log entry arrived")
		return LogEntry{}
	}
}

func TestBroadcasterDeliversToAllChannelClient(t *testing.T) {
	b := GetBroadcaster()
	client := b.NewClient(AppliedFilters{Channel: "all", Level: slog.LevelDebug})
	b.RegisterClient(client)
	defer b.UnregisterClient(client)

	b.SubmitLog(LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Channel:   string(ChannelSystem),
		Level:     "INFO",
		Message:   "engine warmed up",
	})

	entry := receiveEntry(t, client)
	assert.Equal(t, "engine warmed up", entry.Message)
	assert.Equal(t, string(ChannelSystem), entry.Channel)
}

func TestBroadcasterFiltersByChannel(t *testing.T) {
	b := GetBroadcaster()
	client := b.NewClient(AppliedFilters{Channel: ChannelRank, Level: slog.LevelDebug})
	b.RegisterClient(client)
	defer b.UnregisterClient(client)

	b.SubmitLog(LogEntry{Channel: string(ChannelSystem), Level: "INFO", Message: "off-channel"})
	b.SubmitLog(LogEntry{Channel: string(ChannelRank), Level: "INFO", Message: "on-channel"})

	entry := receiveEntry(t, client)
	assert.Equal(t, "on-channel", entry.Message)
}

func TestChanneledLoggerFeedsLogStream(t *testing.T) {
	logger, err := NewChanneledLogger(&LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelDebug,
		ChannelLevels:   make(map[Channel]slog.Level),
	})
	require.NoError(t, err)

	b := GetBroadcaster()
	client := b.NewClient(AppliedFilters{Channel: ChannelRank, Level: slog.LevelDebug})
	b.RegisterClient(client)
	defer b.UnregisterClient(client)

	logger.WithFingerprint(ChannelRank, "01J0000000000000000000FPID").Debug("Suggestions ranked", "candidates", 3)

	entry := receiveEntry(t, client)
	assert.Equal(t, "Suggestions ranked", entry.Message)
	assert.Equal(t, string(ChannelRank), entry.Channel)
	// Fingerprints are masked before they reach the stream.
	assert.Equal(t, "01J0****FPID", entry.FingerprintID)
}

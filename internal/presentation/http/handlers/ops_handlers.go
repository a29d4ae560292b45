package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/messaging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
)

// OpsHandlers contains the live ops endpoints: the pulse websocket, the
// log stream, and the performance snapshot.
type OpsHandlers struct {
	broadcaster *messaging.PulseBroadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	upgrader    websocket.Upgrader
}

// NewOpsHandlers creates ops handlers with injected dependencies
func NewOpsHandlers(broadcaster *messaging.PulseBroadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *OpsHandlers {
	return &OpsHandlers{
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard origin checks are handled by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetPulse handles GET /api/v1/ops/pulse - upgrades to a websocket that
// streams store metrics on every broadcaster tick.
func (h *OpsHandlers) GetPulse(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Pulse().Error("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := messaging.NewPulseClient(conn)
	if !h.broadcaster.Register(client) {
		h.logger.Pulse().Warn("Ops client refused, capacity reached")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "capacity reached"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump(h.broadcaster)
}

// GetLogs handles GET /api/v1/ops/logs - streams log lines over SSE,
// filterable by ?channel= and ?level=.
func (h *OpsHandlers) GetLogs(c *gin.Context) {
	broadcaster := logging.GetBroadcaster()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	filters := logging.AppliedFilters{
		Channel: logging.Channel(c.DefaultQuery("channel", "all")),
		Level:   parseLogLevel(c.DefaultQuery("level", "INFO")),
	}

	client := broadcaster.NewClient(filters)
	broadcaster.RegisterClient(client)
	defer broadcaster.UnregisterClient(client)

	fmt.Fprintf(c.Writer, ": connection established\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return false
			}
			fmt.Fprintf(w, "data: %s\n\n", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// GetPerf handles GET /api/v1/ops/perf - reports process uptime and the
// accumulated slow-operation alerts.
func (h *OpsHandlers) GetPerf(c *gin.Context) {
	alerts := h.perfTracker.GetAlerts()
	c.JSON(http.StatusOK, gin.H{
		"uptimeSeconds": int64(h.perfTracker.Uptime().Seconds()),
		"alertCount":    len(alerts),
		"alerts":        alerts,
	})
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BharatAdaptive/munimji-go/internal/domain/intelligence"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// PulseClient represents a single connected ops dashboard client.
type PulseClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// NewPulseClient wraps a websocket connection with a buffered send channel.
func NewPulseClient(conn *websocket.Conn) *PulseClient {
	return &PulseClient{
		Conn: conn,
		Send: make(chan []byte, 8),
	}
}

// PulsePayload is the data structure pushed to ops clients on each tick.
type PulsePayload struct {
	Timestamp       time.Time                              `json:"timestamp"`
	Profiles        int                                    `json:"profiles"`
	TotalEvents     int64                                  `json:"totalEvents"`
	TotalLikes      int                                    `json:"totalLikes"`
	PersonaFeedback map[string]intelligence.FeedbackCounts `json:"personaFeedback"`
	ClientCount     int                                    `json:"clientCount"`
}

// PulseBroadcaster manages connected ops clients and pushes store metrics on
// a fixed interval.
type PulseBroadcaster struct {
	clients    map[*PulseClient]bool
	register   chan *PulseClient
	unregister chan *PulseClient
	done       chan struct{}
	store      intelligence.Store
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
	closeOnce  sync.Once
}

// NewPulseBroadcaster creates a new broadcaster instance.
func NewPulseBroadcaster(store intelligence.Store, logger *logging.ChanneledLogger) *PulseBroadcaster {
	return &PulseBroadcaster{
		clients:    make(map[*PulseClient]bool),
		register:   make(chan *PulseClient),
		unregister: make(chan *PulseClient),
		done:       make(chan struct{}),
		store:      store,
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *PulseBroadcaster) Run() {
	ticker := time.NewTicker(config.PulseInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			count := len(b.clients)
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Pulse().Info("Ops client registered", "clients", count)
			}

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			count := len(b.clients)
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Pulse().Info("Ops client unregistered", "clients", count)
			}

		case <-ticker.C:
			b.broadcastPulse()

		case <-b.done:
			b.mu.Lock()
			for client := range b.clients {
				close(client.Send)
				delete(b.clients, client)
			}
			b.mu.Unlock()
			return
		}
	}
}

// Register queues a client for registration. Returns false when the client
// cap is reached and the connection should be refused.
func (b *PulseBroadcaster) Register(client *PulseClient) bool {
	if b.ClientCount() >= config.MaxPulseClients {
		return false
	}
	select {
	case b.register <- client:
		return true
	case <-b.done:
		return false
	}
}

// Unregister queues a client for unregistration.
func (b *PulseBroadcaster) Unregister(client *PulseClient) {
	select {
	case b.unregister <- client:
	case <-b.done:
	}
}

// ClientCount reports the number of connected ops clients.
func (b *PulseBroadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Shutdown stops the broadcast loop and disconnects all clients.
func (b *PulseBroadcaster) Shutdown() {
	b.closeOnce.Do(func() { close(b.done) })
}

// broadcastPulse gathers store metrics and sends them to every client.
// Clients with full send buffers are skipped rather than blocked on.
func (b *PulseBroadcaster) broadcastPulse() {
	b.mu.RLock()
	count := len(b.clients)
	b.mu.RUnlock()
	if count == 0 {
		return
	}

	stats := b.store.Stats()
	payload := PulsePayload{
		Timestamp:       time.Now().UTC(),
		Profiles:        stats.Profiles,
		TotalEvents:     stats.TotalEvents,
		TotalLikes:      stats.TotalLikes,
		PersonaFeedback: b.store.PersonaFeedback(),
		ClientCount:     count,
	}

	message, err := json.Marshal(payload)
	if err != nil {
		if b.logger != nil {
			b.logger.Pulse().Error("Error marshaling pulse payload", "error", err.Error())
		}
		return
	}

	b.mu.RLock()
	for client := range b.clients {
		select {
		case client.Send <- message:
		default:
		}
	}
	b.mu.RUnlock()
}

// WritePump drains a client's send channel onto its websocket connection.
// It returns when the channel closes or a write fails.
func (c *PulseClient) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(config.PulseWriteTimeout))
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.SetWriteDeadline(time.Now().Add(config.PulseWriteTimeout))
	c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPump consumes and discards client messages so pings are handled, and
// unregisters the client when the connection drops.
func (c *PulseClient) ReadPump(b Broadcaster) {
	defer func() {
		b.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

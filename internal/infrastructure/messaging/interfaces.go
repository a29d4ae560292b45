// Package messaging provides the websocket ops pulse for live store metrics.
package messaging

// Broadcaster manages connected ops clients and pushes periodic pulses.
type Broadcaster interface {
	Register(client *PulseClient) bool
	Unregister(client *PulseClient)
	ClientCount() int
	Shutdown()
}

// Package provider supplies greeting text generation for the init response.
// The engine works fully without a generative backend; the static provider
// covers every request and the GenAI provider upgrades the copy when a key
// is configured.
package provider

import "context"

// GreetingRequest carries the context available when composing a greeting.
type GreetingRequest struct {
	PersonaName string
	Stage       string
	TimeOfDay   string
	Language    string
	Interests   []string
}

// GreetingProvider composes a short greeting line for the init response.
type GreetingProvider interface {
	Greeting(ctx context.Context, req GreetingRequest) (string, error)
	Name() string
}

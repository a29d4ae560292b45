package provider

import "context"

// StaticProvider serves canned greetings by time of day. It is the default
// provider and the fallback when the generative backend is unavailable.
type StaticProvider struct{}

// NewStaticProvider creates a new static greeting provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

var staticGreetings = map[string]string{
	"morning": "Namaste! Shubh prabhat, a fresh start to your day.",
	"day":     "Namaste! Hope your day is going well.",
	"evening": "Namaste! Shubh sandhya, time to unwind.",
	"night":   "Namaste! Winding down for the night?",
}

const defaultGreeting = "Namaste! Welcome back."

// Greeting returns a canned line for the request's time of day.
func (p *StaticProvider) Greeting(_ context.Context, req GreetingRequest) (string, error) {
	if greeting, ok := staticGreetings[req.TimeOfDay]; ok {
		return greeting, nil
	}
	return defaultGreeting, nil
}

// Name identifies the provider in logs and responses.
func (p *StaticProvider) Name() string {
	return "static"
}

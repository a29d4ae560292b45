package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
)

// GenAIProvider composes greetings with Google's Gemini API.
type GenAIProvider struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	fallback GreetingProvider
	logger   *logging.ChanneledLogger
}

// NewGenAIProvider creates a GenAI-backed greeting provider. Failures at
// request time fall back to the static provider instead of erroring the
// init response.
func NewGenAIProvider(apiKey, model string, timeout time.Duration, logger *logging.ChanneledLogger) (*GenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIProvider{
		client:   client,
		model:    model,
		timeout:  timeout,
		fallback: NewStaticProvider(),
		logger:   logger,
	}, nil
}

// Greeting asks the model for a one-line greeting and falls back to the
// static provider on any failure.
func (p *GenAIProvider) Greeting(ctx context.Context, req GreetingRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(buildPrompt(req)), nil)
	if err != nil {
		if p.logger != nil {
			p.logger.Provider().Warn("GenAI greeting failed, using static fallback",
				"error", err.Error(), "model", p.model, "duration", time.Since(start))
		}
		return p.fallback.Greeting(ctx, req)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return p.fallback.Greeting(ctx, req)
	}
	if p.logger != nil {
		p.logger.Provider().Debug("GenAI greeting composed", "model", p.model, "duration", time.Since(start))
	}
	return text, nil
}

// Name identifies the provider in logs and responses.
func (p *GenAIProvider) Name() string {
	return fmt.Sprintf("genai:%s", p.model)
}

func buildPrompt(req GreetingRequest) string {
	var b strings.Builder
	b.WriteString("Write one short, warm greeting line (under 15 words) for an Indian mobile app user. ")
	b.WriteString("Start with \"Namaste!\". Do not use emoji or quotation marks.")
	if req.TimeOfDay != "" {
		fmt.Fprintf(&b, " It is %s.", req.TimeOfDay)
	}
	if req.PersonaName != "" {
		fmt.Fprintf(&b, " The user fits the %q profile.", req.PersonaName)
	}
	if req.Stage != "" {
		fmt.Fprintf(&b, " They are a %s of the app.", req.Stage)
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, " Their interests: %s.", strings.Join(req.Interests, ", "))
	}
	if req.Language != "" && req.Language != "en" {
		fmt.Fprintf(&b, " Their preferred language code is %s; keep the greeting in simple English with a touch of that language.", req.Language)
	}
	return b.String()
}

package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGreetingCoversTimeOfDayVocabulary(t *testing.T) {
	p := NewStaticProvider()

	// Every value the snapshot's timeOfDay field can carry gets its own line.
	for _, timeOfDay := range []string{"morning", "day", "evening", "night"} {
		greeting, err := p.Greeting(context.Background(), GreetingRequest{TimeOfDay: timeOfDay})
		require.NoError(t, err)
		assert.NotEqual(t, defaultGreeting, greeting, "timeOfDay %q fell through to the default", timeOfDay)
		assert.Contains(t, greeting, "Namaste!")
	}
}

func TestStaticGreetingDefaultsOnUnknownTimeOfDay(t *testing.T) {
	p := NewStaticProvider()

	greeting, err := p.Greeting(context.Background(), GreetingRequest{TimeOfDay: "brahma_muhurta"})
	require.NoError(t, err)
	assert.Equal(t, defaultGreeting, greeting)
}

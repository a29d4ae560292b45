package personas

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BharatAdaptive/munimji-go/internal/domain/suggestions"
)

// Catalog is the immutable, ordered persona registry. Definition order
// matters: the matcher breaks score ties by iteration order, so the
// catalog preserves exactly the order personas were registered in.
type Catalog struct {
	ordered []Persona
	byID    map[string]int
}

// personaSpec is the on-disk JSON shape; triggers are bare names that
// get resolved against the predicate table at load time.
type personaSpec struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Triggers    []string                 `json:"triggers"`
	Suggestions []suggestions.Suggestion `json:"suggestions"`
}

// NewCatalog builds a catalog from resolved personas, preserving order.
func NewCatalog(personas []Persona) *Catalog {
	c := &Catalog{
		ordered: make([]Persona, 0, len(personas)),
		byID:    make(map[string]int, len(personas)),
	}
	for _, p := range personas {
		if _, exists := c.byID[p.ID]; exists {
			continue // first definition wins
		}
		c.byID[p.ID] = len(c.ordered)
		c.ordered = append(c.ordered, p)
	}
	return c
}

// LoadCatalog reads a persona catalog from a JSON file. An empty path
// yields the compiled-in default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona catalog %s: %w", path, err)
	}

	var specs []personaSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse persona catalog %s: %w", path, err)
	}

	personas := make([]Persona, 0, len(specs))
	for _, spec := range specs {
		personas = append(personas, resolveSpec(spec))
	}
	return NewCatalog(personas), nil
}

func resolveSpec(spec personaSpec) Persona {
	triggers := make([]Trigger, 0, len(spec.Triggers))
	for _, name := range spec.Triggers {
		triggers = append(triggers, NewTrigger(name))
	}
	return Persona{
		ID:          spec.ID,
		Name:        spec.Name,
		Description: spec.Description,
		Triggers:    triggers,
		Suggestions: spec.Suggestions,
	}
}

// Personas returns the catalog entries in definition order.
func (c *Catalog) Personas() []Persona {
	return c.ordered
}

// Get returns a persona by id.
func (c *Catalog) Get(id string) (Persona, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Persona{}, false
	}
	return c.ordered[idx], true
}

// Len returns the number of registered personas.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

func triggersFor(names ...string) []Trigger {
	triggers := make([]Trigger, 0, len(names))
	for _, name := range names {
		triggers = append(triggers, NewTrigger(name))
	}
	return triggers
}

// DefaultCatalog is the compiled-in Bharat persona set used when no
// catalog file is configured.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Persona{
		{
			ID:          "morning_spiritual",
			Name:        "Morning Devotee",
			Description: "Starts the day with devotional and wellness content",
			Triggers:    triggersFor("morning", "hindi_or_regional", "spiritual_interest", "low_brightness"),
			Suggestions: []suggestions.Suggestion{
				{Title: "Bhajan of the day", Description: "A calm devotional song to begin your morning", ActionID: "play_bhajan", Icon: "om", Priority: 1, ContentType: "song", Source: "bhakti_sangrah"},
				{Title: "Morning aarti", Description: "Join the live morning aarti stream", ActionID: "open_aarti", Icon: "diya", Priority: 2, ContentType: "video", Source: "mandir_live"},
				{Title: "Gita shloka", Description: "Today's shloka with a short explanation", ActionID: "read_shloka", Icon: "book", Priority: 3, ContentType: "article", Source: "gyaan_patrika"},
			},
		},
		{
			ID:          "commuter_lite",
			Name:        "Commuter on the Move",
			Description: "Short, data-light content for travel time",
			Triggers:    triggersFor("on_the_move", "slow_network", "save_data", "low_end_device"),
			Suggestions: []suggestions.Suggestion{
				{Title: "News in 60 seconds", Description: "Quick headlines, light on data", ActionID: "open_news_digest", Icon: "newspaper", Priority: 1, ContentType: "article", Source: "khabar_lite"},
				{Title: "Offline songs", Description: "Your saved songs, no data needed", ActionID: "open_offline_music", Icon: "music", Priority: 2, ContentType: "song", Source: "desi_beats"},
				{Title: "Podcast for the road", Description: "A short episode that fits your commute", ActionID: "play_podcast", Icon: "mic", Priority: 3, ContentType: "podcast", Source: "gyan_ki_baat"},
			},
		},
		{
			ID:          "night_entertainment",
			Name:        "Night Owl",
			Description: "Evening wind-down entertainment",
			Triggers:    triggersFor("night", "wifi_connected", "headphones_on", "charging"),
			Suggestions: []suggestions.Suggestion{
				{Title: "Tonight's top show", Description: "A trending episode picked for you", ActionID: "play_show", Icon: "tv", Priority: 1, ContentType: "video", Source: "filmy_duniya"},
				{Title: "Late night playlist", Description: "Slow tracks for winding down", ActionID: "play_playlist", Icon: "moon", Priority: 2, ContentType: "song", Source: "desi_beats"},
				{Title: "Comedy clips", Description: "Five minutes of stand-up", ActionID: "play_comedy", Icon: "laugh", Priority: 3, ContentType: "video", Source: "hasna_mana_hai"},
			},
		},
		{
			ID:          "weekend_cook",
			Name:        "Weekend Cook",
			Description: "Recipes and kitchen inspiration for the weekend",
			Triggers:    triggersFor("weekend", "daytime", "cooking_interest"),
			Suggestions: []suggestions.Suggestion{
				{Title: "Sunday special recipe", Description: "A festive dish with step-by-step photos", ActionID: "open_recipe", Icon: "pot", Priority: 1, ContentType: "recipe", Source: "rasoi_ghar"},
				{Title: "Quick snacks", Description: "Tea-time snacks under 20 minutes", ActionID: "open_snacks", Icon: "samosa", Priority: 2, ContentType: "recipe", Source: "rasoi_ghar"},
				{Title: "Cooking technique video", Description: "Master one technique this weekend", ActionID: "play_technique", Icon: "knife", Priority: 3, ContentType: "video", Source: "chef_gyan"},
			},
		},
		{
			ID:          "student_learner",
			Name:        "Focused Learner",
			Description: "Study material and skill-building content",
			Triggers:    triggersFor("student", "learning_interest", "weekday", "busy_calendar"),
			Suggestions: []suggestions.Suggestion{
				{Title: "Daily practice quiz", Description: "Ten questions on today's topic", ActionID: "open_quiz", Icon: "pencil", Priority: 1, ContentType: "app", Source: "padhai_app"},
				{Title: "Concept explainer", Description: "A five-minute explainer podcast", ActionID: "play_explainer", Icon: "bulb", Priority: 2, ContentType: "podcast", Source: "gyan_ki_baat"},
				{Title: "Study notes", Description: "Summarized notes for quick revision", ActionID: "open_notes", Icon: "notes", Priority: 3, ContentType: "article", Source: "padhai_app"},
			},
		},
		{
			ID:          FallbackPersonaID,
			Name:        "General",
			Description: "Broadly useful picks when no stronger signal exists",
			Triggers:    []Trigger{},
			Suggestions: []suggestions.Suggestion{
				{Title: "Trending now", Description: "What everyone is watching today", ActionID: "open_trending", Icon: "fire", Priority: 1, ContentType: "video", Source: "filmy_duniya"},
				{Title: "Top headlines", Description: "The day's most important stories", ActionID: "open_news", Icon: "newspaper", Priority: 2, ContentType: "article", Source: "khabar_lite"},
				{Title: "Popular music", Description: "This week's most played tracks", ActionID: "play_popular", Icon: "music", Priority: 3, ContentType: "song", Source: "desi_beats"},
			},
		},
	})
}

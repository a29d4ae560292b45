// Package config provides centralized default values for Munim Ji
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

// loadEnvFile loads environment variables from .env file
func loadEnvFile() {
	envLoaded.Do(func() {
		loadEnvFileOnce()
	})
}

func loadEnvFileOnce() {
	file, err := os.Open(".env")
	if err != nil {
		// .env file is optional, don't error if it doesn't exist
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

// getEnvInt reads environment variable with fallback to default
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat reads environment variable with float fallback
func getEnvFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvString reads environment variable with string fallback
func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// getEnvDuration reads environment variable as duration with fallback
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		// Try as integer seconds
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// Server Configuration
var (
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
)

// Security Configuration
var (
	JWTSecret       string
	SessionTokenTTL time.Duration
)

// Matcher Configuration
var (
	// MatchThreshold is the minimum trigger score for a persona to win outright.
	MatchThreshold float64
	// EmptyCatalogConfidence is reported when no personas are registered.
	EmptyCatalogConfidence float64
	CatalogPath            string
)

// Intelligence Configuration
var (
	// Bounded collection caps. Eviction is always oldest-first.
	RecentEventCap     int
	ScenarioHistoryCap int
	ContentTypeCap     int
	PreferredSourceCap int
	ActiveHourCap      int
	MaxInsights        int

	// Affinity increments
	AffinityPositiveDelta float64
	AffinityNegativeDelta float64
	AffinityMatchDelta    float64

	// Engagement score weights and denominators
	EngagementEventWeight   float64
	EngagementLikeWeight    float64
	EngagementSessionWeight float64
	EngagementEventScale    float64
	EngagementLikeScale     float64
	EngagementSessionScale  float64

	// Journey stage day thresholds (inclusive upper bounds)
	NewcomerMaxDay int
	ExplorerMaxDay int
	RegularMaxDay  int
)

// Ranker Configuration
var (
	RankLikedDelta    int
	RankDislikedDelta int
	RankSourceDelta   int
)

// Persistence Configuration
var (
	DatabaseURL              string
	DatabaseAuthToken        string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	SlowQueryThreshold       time.Duration
)

// Provider Configuration
var (
	GenAIAPIKey  string
	GenAIModel   string
	GenAITimeout time.Duration
)

// Ops Pulse Configuration
var (
	PulseInterval     time.Duration
	MaxPulseClients   int
	PulseWriteTimeout time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Security
	JWTSecret = getEnvString("JWT_SECRET", "")
	SessionTokenTTL = getEnvDuration("SESSION_TOKEN_TTL", 30*24*time.Hour)

	// Matcher
	MatchThreshold = getEnvFloat("MATCH_THRESHOLD", 0.4)
	EmptyCatalogConfidence = getEnvFloat("EMPTY_CATALOG_CONFIDENCE", 0.3)
	CatalogPath = getEnvString("PERSONA_CATALOG_PATH", "")

	// Intelligence caps
	RecentEventCap = getEnvInt("RECENT_EVENT_CAP", 100)
	ScenarioHistoryCap = getEnvInt("SCENARIO_HISTORY_CAP", 20)
	ContentTypeCap = getEnvInt("CONTENT_TYPE_CAP", 5)
	PreferredSourceCap = getEnvInt("PREFERRED_SOURCE_CAP", 5)
	ActiveHourCap = getEnvInt("ACTIVE_HOUR_CAP", 8)
	MaxInsights = getEnvInt("MAX_INSIGHTS", 5)

	// Affinity increments
	AffinityPositiveDelta = getEnvFloat("AFFINITY_POSITIVE_DELTA", 1.0)
	AffinityNegativeDelta = getEnvFloat("AFFINITY_NEGATIVE_DELTA", -0.5)
	AffinityMatchDelta = getEnvFloat("AFFINITY_MATCH_DELTA", 0.5)

	// Engagement score
	EngagementEventWeight = getEnvFloat("ENGAGEMENT_EVENT_WEIGHT", 0.3)
	EngagementLikeWeight = getEnvFloat("ENGAGEMENT_LIKE_WEIGHT", 0.3)
	EngagementSessionWeight = getEnvFloat("ENGAGEMENT_SESSION_WEIGHT", 0.4)
	EngagementEventScale = getEnvFloat("ENGAGEMENT_EVENT_SCALE", 100)
	EngagementLikeScale = getEnvFloat("ENGAGEMENT_LIKE_SCALE", 20)
	EngagementSessionScale = getEnvFloat("ENGAGEMENT_SESSION_SCALE", 10)

	// Journey stages
	NewcomerMaxDay = getEnvInt("NEWCOMER_MAX_DAY", 3)
	ExplorerMaxDay = getEnvInt("EXPLORER_MAX_DAY", 10)
	RegularMaxDay = getEnvInt("REGULAR_MAX_DAY", 20)

	// Ranker deltas (lower adjusted score ranks first)
	RankLikedDelta = getEnvInt("RANK_LIKED_DELTA", -2)
	RankDislikedDelta = getEnvInt("RANK_DISLIKED_DELTA", 5)
	RankSourceDelta = getEnvInt("RANK_SOURCE_DELTA", -1)

	// Persistence
	DatabaseURL = getEnvString("DATABASE_URL", "file:munimji.db")
	DatabaseAuthToken = getEnvString("DATABASE_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	// Provider
	GenAIAPIKey = getEnvString("GENAI_API_KEY", "")
	GenAIModel = getEnvString("GENAI_MODEL", "gemini-2.0-flash")
	GenAITimeout = getEnvDuration("GENAI_TIMEOUT", 10*time.Second)

	// Ops pulse
	PulseInterval = getEnvDuration("PULSE_INTERVAL", 20*time.Second)
	MaxPulseClients = getEnvInt("MAX_PULSE_CLIENTS", 50)
	PulseWriteTimeout = getEnvDuration("PULSE_WRITE_TIMEOUT", 10*time.Second)
}

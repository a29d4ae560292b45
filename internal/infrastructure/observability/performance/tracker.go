package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and aggregates basic metrics.
type Tracker struct {
	markers    map[string]*Marker
	alerts     []*Alert
	thresholds *AlertThresholds
	mu         sync.RWMutex
	started    time.Time
	config     *TrackerConfig
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers   int  `json:"maxMarkers"`
	MaxAlerts    int  `json:"maxAlerts"`
	EnableAlerts bool `json:"enableAlerts"`
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:   10000,
		MaxAlerts:    500,
		EnableAlerts: true,
	}
}

// AlertThresholds defines response-time thresholds for generating alerts
type AlertThresholds struct {
	SlowResponseThreshold     time.Duration `json:"slowResponseThreshold"`
	VerySlowResponseThreshold time.Duration `json:"verySlowResponseThreshold"`
	CriticalResponseThreshold time.Duration `json:"criticalResponseThreshold"`
}

// DefaultAlertThresholds returns sensible default alert thresholds
func DefaultAlertThresholds() *AlertThresholds {
	return &AlertThresholds{
		SlowResponseThreshold:     500 * time.Millisecond,
		VerySlowResponseThreshold: 2 * time.Second,
		CriticalResponseThreshold: 5 * time.Second,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}
	return &Tracker{
		markers:    make(map[string]*Marker),
		alerts:     make([]*Alert, 0),
		thresholds: DefaultAlertThresholds(),
		started:    time.Now(),
		config:     config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%d", operation, time.Now().UnixNano())

	t.mu.Lock()
	if len(t.markers) < t.config.MaxMarkers {
		t.markers[markerID] = marker
	}
	t.mu.Unlock()

	return marker
}

// CompleteOperation manually completes an operation and checks for alerts
func (t *Tracker) CompleteOperation(marker *Marker) {
	if marker == nil || marker.Completed {
		return
	}
	marker.Complete()
	if t.config.EnableAlerts {
		t.checkForAlerts(marker)
	}
}

// checkForAlerts evaluates a completed marker against alert thresholds
func (t *Tracker) checkForAlerts(marker *Marker) {
	if marker == nil || !marker.Completed {
		return
	}

	var severity AlertSeverity
	var threshold time.Duration
	switch {
	case marker.Duration >= t.thresholds.CriticalResponseThreshold:
		severity, threshold = AlertCritical, t.thresholds.CriticalResponseThreshold
	case marker.Duration >= t.thresholds.VerySlowResponseThreshold:
		severity, threshold = AlertWarning, t.thresholds.VerySlowResponseThreshold
	case marker.Duration >= t.thresholds.SlowResponseThreshold:
		severity, threshold = AlertInfo, t.thresholds.SlowResponseThreshold
	default:
		return
	}

	alert := &Alert{
		ID:        fmt.Sprintf("%s_%d", marker.Operation, marker.EndTime.UnixNano()),
		Timestamp: marker.EndTime,
		Severity:  severity,
		Operation: marker.Operation,
		Threshold: threshold,
		Actual:    marker.Duration,
		Message:   fmt.Sprintf("operation %s took %s (threshold %s)", marker.Operation, marker.Duration, threshold),
	}

	t.mu.Lock()
	t.alerts = append(t.alerts, alert)
	if len(t.alerts) > t.config.MaxAlerts {
		t.alerts = t.alerts[len(t.alerts)-t.config.MaxAlerts:]
	}
	t.mu.Unlock()
}

// GetAlerts returns a copy of the current alerts.
func (t *Tracker) GetAlerts() []*Alert {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Alert, len(t.alerts))
	copy(out, t.alerts)
	return out
}

// Uptime reports how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/performance"
)

func TestGetPerfReportsUptimeAndAlerts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tracker := performance.NewTracker(performance.DefaultTrackerConfig())

	// Back-date a marker past the critical threshold so completion raises
	// an alert without sleeping.
	marker := tracker.StartOperation("post_init_request")
	marker.StartTime = time.Now().Add(-6 * time.Second)
	tracker.CompleteOperation(marker)

	h := NewOpsHandlers(nil, nil, tracker)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/ops/perf", nil)
	h.GetPerf(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UptimeSeconds int64 `json:"uptimeSeconds"`
		AlertCount    int   `json:"alertCount"`
		Alerts        []struct {
			Operation string `json:"operation"`
			Severity  string `json:"severity"`
		} `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.GreaterOrEqual(t, body.UptimeSeconds, int64(0))
	require.Equal(t, 1, body.AlertCount)
	assert.Equal(t, "post_init_request", body.Alerts[0].Operation)
	assert.Equal(t, string(performance.AlertCritical), body.Alerts[0].Severity)
}

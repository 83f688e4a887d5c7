package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/sprintburn/internal/jira"
	"github.com/alexanderramin/sprintburn/internal/service"
)

func TestOnRequest_CountsByEndpointAndStatus(t *testing.T) {
	r := New()

	r.OnRequest(jira.RequestEvent{Endpoint: "changelog", Status: 200, Duration: 20 * time.Millisecond})
	r.OnRequest(jira.RequestEvent{Endpoint: "changelog", Status: 200})
	r.OnRequest(jira.RequestEvent{Endpoint: "changelog", Status: 429})
	r.OnRequest(jira.RequestEvent{Endpoint: "worklog", Err: errors.New("reset")})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.jiraRequests.WithLabelValues("changelog", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.jiraRequests.WithLabelValues("changelog", "429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.jiraRequests.WithLabelValues("worklog", "error")))
}

func TestObserveUseCase_SeriesOutcomes(t *testing.T) {
	r := New()
	ctx := context.Background()

	r.ObserveUseCase(ctx, service.UseCaseEvent{Name: "compute-daily-series", Success: true, Fields: map[string]any{"items": 12}})
	r.ObserveUseCase(ctx, service.UseCaseEvent{Name: "compute-daily-series", Success: false, Fields: map[string]any{"items": 5}})
	r.ObserveUseCase(ctx, service.UseCaseEvent{Name: "save-run", Success: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.seriesRuns.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.seriesRuns.WithLabelValues("failure")))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.seriesItems))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runsSaved))
}

func TestHandler_ServesExposition(t *testing.T) {
	r := New()
	r.OnRequest(jira.RequestEvent{Endpoint: "sprint", Status: 200})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sprintburn_jira_requests_total{endpoint="sprint",status="200"} 1`)
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "compute-daily-series", Success: true})
	path := filepath.Join(t.TempDir(), "sprintburn.prom")

	require.NoError(t, r.WriteTextfile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sprintburn_series_runs_total{outcome="success"} 1`)
}

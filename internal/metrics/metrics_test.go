package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/saulo-duarte/streaker/internal/metrics"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.BadgesAwarded.WithLabelValues("streak_7"))
	metrics.BadgesAwarded.WithLabelValues("streak_7").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.BadgesAwarded.WithLabelValues("streak_7")))

	failures := testutil.ToFloat64(metrics.StreakRecomputeFailures)
	metrics.StreakRecomputeFailures.Inc()
	assert.Equal(t, failures+1, testutil.ToFloat64(metrics.StreakRecomputeFailures))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", metrics.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goals/123", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	scrape := httptest.NewRecorder()
	r.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()
	assert.True(t, strings.Contains(body, `streaker_http_request_duration_seconds_count{method="GET",route="/goals/{id}",status="418"}`), body)
}

// Package metrics exposes Prometheus instruments for streak, goal and badge
// activity plus HTTP latency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ActivityMutations counts activity writes by operation (log, edit, delete, toggle).
var ActivityMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "streaker",
	Name:      "activity_mutations_total",
	Help:      "Activity item mutations by operation.",
}, []string{"op"})

// StreakRecomputeFailures counts mutations whose streak refresh failed.
var StreakRecomputeFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "streaker",
	Name:      "streak_recompute_failures_total",
	Help:      "Streak recomputations that failed after a successful mutation.",
})

// GoalTransitions counts goal status changes by target status.
var GoalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "streaker",
	Name:      "goal_transitions_total",
	Help:      "Goal status transitions by resulting status.",
}, []string{"to"})

// BadgesAwarded counts first-time badge awards by criteria.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "streaker",
	Name:      "badges_awarded_total",
	Help:      "Badges awarded by criteria.",
}, []string{"criteria"})

// RequestDuration tracks handler latency by route pattern.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "streaker",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware observes RequestDuration. The route label is the chi pattern so
// ids in the path do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

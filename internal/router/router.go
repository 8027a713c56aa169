package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/streaker/internal/activity"
	"github.com/saulo-duarte/streaker/internal/auth"
	"github.com/saulo-duarte/streaker/internal/badge"
	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/goal"
	"github.com/saulo-duarte/streaker/internal/metrics"
	"github.com/saulo-duarte/streaker/internal/middlewares"
	"github.com/saulo-duarte/streaker/internal/user"
)

type RouterConfig struct {
	UserHandler     *user.Handler
	ActivityHandler *activity.Handler
	GoalHandler     *goal.Handler
	BadgeHandler    *badge.Handler

	CORSOrigins    []string
	RequestTimeout time.Duration
	MetricsEnabled bool
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middlewares.Cors(cfg.CORSOrigins))
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/activities", activity.Routes(cfg.ActivityHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/badges", badge.Routes(cfg.BadgeHandler))
	})
	return r
}

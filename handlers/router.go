package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"TaskAPI/metrics"
	"TaskAPI/middleware"
)

// RouterOptions carries the shared infrastructure the router wires around the handlers.
type RouterOptions struct {
	Logger   *logrus.Logger
	Limiter  *rate.Limiter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter returns the service's HTTP handler.
//
// The following endpoints are available:
//
//  1. GET /                - Welcome message
//  2. GET /health          - Health check
//  3. GET /tasks           - List tasks (skip, limit, completed)
//  4. GET /tasks/search    - Search tasks by title or description (q)
//  5. GET /tasks/{id}      - Get a task by ID
//  6. POST /tasks          - Create a new task
//  7. PATCH /tasks/{id}    - Partially update a task
//  8. DELETE /tasks/{id}   - Delete a task
//  9. GET /metrics         - Display Prometheus metrics
func NewRouter(h *TaskHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if opts.Metrics != nil {
			r.Use(middleware.Metrics(opts.Metrics))
		}
		if opts.Limiter != nil {
			r.Use(middleware.RateLimiter(opts.Limiter, opts.Logger))
		}

		r.Get("/", h.RootHandler)
		r.Get("/health", h.HealthHandler)
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasksHandler)
			r.Post("/", h.CreateTaskHandler)
			r.Get("/search", h.SearchTasksHandler)
			r.Get("/{id}", h.GetTaskHandler)
			r.Patch("/{id}", h.UpdateTaskHandler)
			r.Delete("/{id}", h.DeleteTaskHandler)
		})
	})
	return r
}

// Package middleware provides the HTTP middleware shared by every route:
// rate limiting, request logging and Prometheus instrumentation.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"TaskAPI/metrics"
	"TaskAPI/response"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFromContext returns the id assigned by RequestLogger, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RateLimiter is a middleware function that implements rate limiting for HTTP requests.
// If the request is not allowed, it returns a JSON response with an error message and
// HTTP status code 429 (Too Many Requests).
func RateLimiter(limiter *rate.Limiter, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				entry := log.WithFields(logrus.Fields{
					"request":    r.Method + " " + r.URL.Path,
					"request_id": RequestIDFromContext(r.Context()),
				})
				entry.Warn("rate limit exceeded")
				err := response.JSON(w, http.StatusTooManyRequests, response.Message{
					Status: "Request Failed",
					Body:   "The API is at capacity, try again later.",
				})
				if err != nil {
					entry.Error(err.Error())
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger tags every request with an id and logs one line once it completes.
// A client supplied X-Request-ID is reused.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))

			status := statusOf(ww)
			entry := log.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"duration":   time.Since(start).String(),
			})
			if status >= http.StatusInternalServerError {
				entry.Error("request failed")
				return
			}
			entry.Info("request completed")
		})
	}
}

// Metrics counts calls, errors and latency per route pattern.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			endpoint := r.Method + " " + routePattern(r)
			m.EndpointCalls.WithLabelValues(endpoint).Inc()
			if statusOf(ww) >= http.StatusBadRequest {
				m.Errors.WithLabelValues(endpoint).Inc()
			}
			m.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern returns the matched chi route pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func statusOf(ww chimw.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}

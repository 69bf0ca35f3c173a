// TaskAPI is a web service that provides CRUD operations for tasks held in memory.
//
// Tasks are kept in an in-process store for the lifetime of the server and are lost on restart.
// Every task gets an integer id assigned from a counter starting at 1; ids are never reused.
// A rate limit (2 events per second, burst of 20 by default) protects the task endpoints against abuse.
// It also provides Prometheus metrics for monitoring and recording metrics.
//
// The following endpoints are available:
//
//  1. GET / - Welcome message
//  2. GET /health - Health check
//  3. GET /tasks - List tasks, with skip, limit and completed query parameters
//  4. GET /tasks/search?q= - Search tasks by title or description
//  5. GET /tasks/{id} - Get a task by ID
//  6. POST /tasks - Create a new task
//  7. PATCH /tasks/{id} - Partially update a task
//  8. DELETE /tasks/{id} - Delete a task
//  9. GET /metrics - Display Prometheus metrics
//
// Configuration is read from the environment and an optional .env file; see package config.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"TaskAPI/config"
	"TaskAPI/handlers"
	"TaskAPI/metrics"
	"TaskAPI/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log := cfg.NewLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	taskStore := store.NewStore()
	m := metrics.New(reg, taskStore.Count)

	taskHandler := handlers.NewTaskHandler(taskStore, log)
	router := handlers.NewRouter(taskHandler, handlers.RouterOptions{
		Logger:   log,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		Metrics:  m,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr}).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

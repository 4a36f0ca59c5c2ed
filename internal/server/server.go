// Package server wires the HTTP router, middleware stack and endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tuxkoh/rng-backend/internal/catalog"
	"github.com/tuxkoh/rng-backend/internal/drop"
	"github.com/tuxkoh/rng-backend/internal/handler"
	"github.com/tuxkoh/rng-backend/internal/metrics"
)

const maxBodyBytes = 1 << 20 // 1MB request cap

// Server hosts the HTTP API.
type Server struct {
	httpServer *http.Server
}

// New builds the router and returns a server ready to Start. All computation
// endpoints are stateless: each request resolves its own working set, so
// requests run in parallel without coordination.
func New(port int, loader *catalog.Loader, cad drop.Cadence) *Server {
	r := chi.NewRouter()

	// Middleware executes outermost to innermost in the order defined.
	r.Use(requestIDMiddleware)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(requestSizeLimit(maxBodyBytes))

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculate", handler.HandleCalculate(loader, cad))
		r.Post("/search", handler.HandleSearch(loader))
		r.Post("/simulate", handler.HandleSimulate(loader, cad))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestSizeLimit rejects bodies larger than n bytes.
func requestSizeLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

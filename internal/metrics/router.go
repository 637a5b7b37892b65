package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// NewRouter serves /metrics and /healthz. Init must have been called.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", Handler())
	return r
}

// NewServer wraps NewRouter in an http.Server listening on addr.
func NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

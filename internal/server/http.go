// Package server wires the monitor's domain HTTP route together with the
// ambient /metrics and /health endpoints every operable service in this
// shape exposes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DoctorMozg/solana-block-monitor/internal/app"
)

// App is the subset of app.Logic the HTTP adapter depends on.
type App interface {
	IsConfirmed(ctx context.Context, slot uint64) (app.Status, error)
}

// Server wraps an http.Server exposing the confirmation endpoint plus
// /metrics and /health.
type Server struct {
	httpServer *http.Server
	ready      func() bool
}

// New builds a Server listening on the given port. ready reports whether
// the synchronizer has completed tip priming, and backs /health.
func New(port int, logic App, ready func() bool) *Server {
	mux := http.NewServeMux()

	s := &Server{ready: ready}

	mux.HandleFunc("/isSlotConfirmed/", s.handleIsSlotConfirmed(logic))
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:    ":" + strconv.Itoa(port),
		Handler: mux,
	}

	return s
}

// ListenAndServe starts the server, blocking until it is shut down.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully drains in-flight requests before returning.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIsSlotConfirmed(logic App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotStr := strings.TrimPrefix(r.URL.Path, "/isSlotConfirmed/")

		slot, err := strconv.ParseUint(slotStr, 10, 64)
		if err != nil {
			// Malformed path parameter surfaces as 500, preserving the
			// existing (if debatable) contract rather than 400.
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		status, err := logic.IsConfirmed(r.Context(), slot)
		if err != nil {
			slog.Error("isSlotConfirmed failed", "slot", slot, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		switch status {
		case app.Confirmed:
			w.WriteHeader(http.StatusOK)
		case app.NotConfirmed:
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.ready == nil || s.ready() {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
}

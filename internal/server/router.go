// Package server exposes the HTTP listener the room device posts its UI
// feedback events to: panel clicks, text input responses, and prompt
// responses.
package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/jshacar-hms/requesthelp/internal/ui"
)

// Trigger starts a new help request; implemented by the workflow engine.
type Trigger interface {
	Trigger()
}

// NewRouter creates the chi router with middleware and routes.
func NewRouter(trigger Trigger, responder ui.Responder, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := NewFeedbackHandler(trigger, responder, logger)
	r.Get("/health", h.Health)
	r.Post("/events", h.Event)

	return r
}

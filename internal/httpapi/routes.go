package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/hub"
	"github.com/DoyleJ11/hots-draft-tracker/internal/tracker"
	"github.com/DoyleJ11/hots-draft-tracker/internal/ws"
)

func SetupRoutes(h *hub.Hub, tr *tracker.Tracker, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/draft", GetDraft(tr))
	r.Post("/draft/clear", ClearDraft(tr))
	r.Post("/bans/learn", LearnBan(tr))
	r.Post("/heroes/learn", LearnHero(tr))
	r.Get("/ws", ws.Handler(h, tr, log))
	return r
}

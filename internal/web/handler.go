package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hugo/presencebot/internal/bot"
	"github.com/hugo/presencebot/internal/config"
)

type Handler struct {
	config *config.Config
	svc    *bot.Service
	log    *zap.Logger
}

func NewHandler(cfg *config.Config, svc *bot.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{config: cfg, svc: svc, log: log}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/person", h.handlePerson)
	mux.HandleFunc("/api/today", h.handleToday)
	mux.HandleFunc("/health", h.handleHealth)
}

// handlePerson returns the rendered current-status block for ?name=.
func (h *Handler) handlePerson(w http.ResponseWriter, r *http.Request) {
	h.handleRendered(w, r, h.svc.StatusFor)
}

// handleToday returns the rendered same-day usage block for ?name=.
func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	h.handleRendered(w, r, h.svc.TodayFor)
}

func (h *Handler) handleRendered(w http.ResponseWriter, r *http.Request, render func(ctx context.Context, name string) string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name parameter", http.StatusBadRequest)
		return
	}

	text := render(r.Context(), name)
	h.respondJSON(w, map[string]string{
		"name": name,
		"text": text,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

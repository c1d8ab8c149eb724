package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hugo/presencebot/internal/bot"
	"github.com/hugo/presencebot/internal/config"
)

// Server exposes a small read-only HTTP surface next to the chat bot:
// rendered person blocks and a health check.
type Server struct {
	config  *config.Config
	handler *Handler
	server  *http.Server
	log     *zap.Logger
}

func NewServer(cfg *config.Config, svc *bot.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	handler := NewHandler(cfg, svc, log)
	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

func (s *Server) Start() error {
	s.log.Info("starting web server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down web server")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return s.server.Addr
}

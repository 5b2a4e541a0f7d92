// Package service exposes the renderer over HTTP so callers can post a batch
// of game records and get hand-history text back.
package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/lox/handscribe/internal/history"
	"github.com/lox/handscribe/internal/record"
)

// Server serves the render endpoint.
type Server struct {
	addr       string
	logger     *log.Logger
	renderer   *history.Renderer
	httpServer *http.Server
}

// NewServer creates a server bound to addr.
func NewServer(addr string, renderer *history.Renderer, logger *log.Logger) *Server {
	s := &Server{
		addr:     addr,
		logger:   logger.WithPrefix("service"),
		renderer: renderer,
	}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the route table; split out so tests can drive it with
// httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting render service", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down render service")
	return s.httpServer.Shutdown(ctx)
}

// handleRender accepts a batch of game records and responds with the rendered
// hand-history text. Once the batch decodes, the response is always 200 with
// displayable text; render problems surface as the renderer's diagnostic
// output, not as an HTTP error.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	batch, err := record.DecodeBatch(r.Body)
	if err != nil {
		s.logger.Warn("rejecting unreadable batch", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	text := s.renderer.RenderBatch(batch)
	s.logger.Info("rendered batch", "hands", len(batch), "bytes", len(text))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

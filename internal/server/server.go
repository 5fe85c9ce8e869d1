package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"iot_backend/internal/config"
)

const (
	maxHeaderBytes = 1 << 20 // 1 MB

	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
	timeouts   config.HTTPConfig
}

// New returns a server using the given timeouts. Zero values fall back to defaults.
func New(timeouts config.HTTPConfig) *Server {
	return &Server{timeouts: withDefaults(timeouts)}
}

func withDefaults(t config.HTTPConfig) config.HTTPConfig {
	if t.ReadHeaderTimeout <= 0 {
		t.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if t.WriteTimeout <= 0 {
		t.WriteTimeout = defaultWriteTimeout
	}
	if t.IdleTimeout <= 0 {
		t.IdleTimeout = defaultIdleTimeout
	}
	return t
}

func (s *Server) newHTTPServer(addr string, handler http.Handler) *http.Server {
	t := withDefaults(s.timeouts)
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: t.ReadHeaderTimeout,
		WriteTimeout:      t.WriteTimeout,
		IdleTimeout:       t.IdleTimeout,
	}
}

// normalizeAddr accepts "8080" or ":8080".
func normalizeAddr(port string) string {
	if port == "" || strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Run starts the HTTP server on the given port and blocks until it stops.
// It returns http.ErrServerClosed after Shutdown.
func (s *Server) Run(port string, handler http.Handler) error {
	s.httpServer = s.newHTTPServer(normalizeAddr(port), handler)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

package router

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/webcore/framework/pkg/contracts"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

const DefaultShutdownTimeout = 10 * time.Second

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              ":8080",
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}

type Server struct {
	cfg     ServerConfig
	handler http.Handler
	logger  contracts.Logger

	mu      sync.RWMutex
	server  *http.Server
	addr    string
	running bool
}

func NewServer(cfg ServerConfig, handler http.Handler, logger contracts.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultServerConfig().Addr
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		addr:    cfg.Addr,
	}
}

// Start listens and serves in the background. The bound address, useful
// with port 0, is available from Addr once Start returns.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrServerAlreadyRunning
	}

	s.server = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return ErrServerStart.WithDetail("addr", s.cfg.Addr).WithCause(err)
	}

	s.addr = listener.Addr().String()
	s.running = true

	srv := s.server
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if s.logger != nil {
				s.logger.Error("server error", "error", err)
			}
		}
	}()

	if s.logger != nil {
		s.logger.Info("HTTP server started", "addr", s.addr)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.running = false
	if err := s.server.Shutdown(ctx); err != nil {
		return ErrServerStop.WithCause(err)
	}

	if s.logger != nil {
		s.logger.Info("HTTP server stopped")
	}

	return nil
}

func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

func (s *Server) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/monitoring"
	"github.com/labelforge/labelforge/engine/infra/server/appstate"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/pkg/config"
	"github.com/labelforge/labelforge/pkg/logger"
)

const (
	serverShutdownTimeout     = 5 * time.Second
	monitoringShutdownTimeout = 5 * time.Second
	httpIdleTimeout           = 60 * time.Second
)

// Server serves the project creation form and the read APIs over one store.
type Server struct {
	config     *config.Config
	store      resources.Store
	monitoring *monitoring.Service
	router     *gin.Engine
}

// NewServer builds the router for store using the configuration carried by
// ctx.
func NewServer(ctx context.Context, store resources.Store) (*Server, error) {
	cfg := config.FromContext(ctx)
	state, err := appstate.NewState(store, cfg)
	if err != nil {
		return nil, err
	}
	mon := monitoring.NewServiceWithFallback(ctx, cfg.Monitoring)
	mon.SetAsGlobal()
	s := &Server{config: cfg, store: store, monitoring: mon}
	s.router = s.buildRouter(ctx, state)
	return s, nil
}

func (s *Server) buildRouter(ctx context.Context, state *appstate.State) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware(logger.FromContext(ctx)))
	r.Use(LoggerMiddleware())
	r.Use(s.monitoring.GinMiddleware())
	r.Use(appstate.StateMiddleware(state))
	RegisterRoutes(r, s)
	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Address is the host:port the server listens on.
func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Server.Host, strconv.Itoa(s.config.Server.Port))
}

// Run serves until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	srv := &http.Server{
		Addr:              s.Address(),
		Handler:           s.router,
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       httpIdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", fmt.Sprintf("http://%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Debug("Received shutdown signal, initiating graceful shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	monCtx, monCancel := context.WithTimeout(context.WithoutCancel(ctx), monitoringShutdownTimeout)
	defer monCancel()
	if err := s.monitoring.Shutdown(monCtx); err != nil {
		log.Warn("Failed to shut down monitoring", "error", err)
	}
	log.Info("Server shutdown completed successfully")
	return nil
}

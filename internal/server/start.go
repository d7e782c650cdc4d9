package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until an interrupt or terminate signal arrives,
// then shuts it down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if s.bus != nil {
		var rec ExpiryRecorder
		if s.metrics != nil {
			rec = s.metrics
		}
		if err := SubscribeSessionEvents(ctx, s.bus, rec); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		addr := s.Cfg.GetAddr()
		slog.Info("Starting server", "addr", addr, "api", s.Cfg.GetAPIBaseURL())
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.E.Shutdown(shutdownCtx)
}

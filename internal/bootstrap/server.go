package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/travelbooking/api"
	"github.com/Domenick1991/travelbooking/config"
)

const shutdownTimeout = 5 * time.Second

// Run serves the HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc api.Services) error {
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           api.NewRouter(cfg.HTTP, cfg.Booking.PageSize, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, httpSrv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		slog.Info("http server stopped")
		return nil
	}
}

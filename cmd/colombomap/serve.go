package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/johnwards/colombomap/internal/api"
	"github.com/johnwards/colombomap/internal/api/admin"
	"github.com/johnwards/colombomap/internal/api/listings"
	"github.com/johnwards/colombomap/internal/api/ui"
	"github.com/johnwards/colombomap/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		handler, err := buildRouter(cfg, a)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runServer(ctx, srv, cfg.Server.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter mounts the JSON and admin APIs under /api/v1 and the pages at
// the root.
func buildRouter(c *config.Config, a *app) (http.Handler, error) {
	r := api.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(api.APIMiddleware(api.APIOptions{
			AllowedOrigins: c.CORS.AllowedOrigins,
			AuthToken:      c.Server.AuthToken,
		})...)
		admin.RegisterRoutes(r, a.store.DB, a.catalog)
		listings.RegisterRoutes(r, a.catalog, a.store.Properties)
	})
	if err := ui.RegisterRoutes(r, a.catalog, ui.Options{
		MapboxToken: c.Mapbox.Token,
		MapboxStyle: c.Mapbox.Style,
	}); err != nil {
		return nil, eris.Wrap(err, "register pages")
	}
	return r, nil
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting colombomap server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})

	return g.Wait()
}

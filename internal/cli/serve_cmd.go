package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/jardin/internal/auth"
	"github.com/alexanderramin/jardin/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if err := cfg.RequireTokenSecret(); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			issuer := auth.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
			api := httpapi.NewServer(httpapi.Services{
				Catalog:   app.Catalog,
				Clients:   app.Clients,
				Quotes:    app.Quotes,
				Contracts: app.Contracts,
				Visits:    app.Visits,
			}, issuer, app.logger(), cfg.Server.RequestTimeout)

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       time.Minute,
			}
			return runServer(cmd.Context(), srv, cfg.Server.ShutdownTimeout, app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from JARDIN_ADDR)")
	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}

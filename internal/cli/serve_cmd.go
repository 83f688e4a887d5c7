package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/sprintburn/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards, series and stored runs as JSON over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireJira(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && app.Config.Serve.Addr != "" {
				addr = app.Config.Serve.Addr
			}

			gin.SetMode(gin.ReleaseMode)
			deps := httpapi.Deps{
				Series: app.Series,
				Boards: app.Boards,
				Runs:   app.Runs,
				Logger: app.Logger,
				Now:    app.now,
			}
			if app.Metrics != nil {
				deps.Metrics = app.Metrics.Handler()
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(deps),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, app *App, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info().Str("addr", srv.Addr).Msg("serve: listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	app.Logger.Info().Msg("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

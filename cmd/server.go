package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(newApp func(*cobra.Command) (*application, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Conduit JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			return app.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides CONDUIT_ADDR)")
	return cmd
}

func (app *application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:         app.config.Addr,
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		app.logger.Info("Starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return xerrors.New(err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		app.logger.Info("Shutting down server", "timeout", app.config.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return xerrors.New(err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}
	app.logger.Info("Server stopped")
	return nil
}

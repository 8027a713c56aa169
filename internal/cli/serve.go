package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/container"
	"github.com/saulo-duarte/streaker/internal/router"
)

const shutdownTimeout = 15 * time.Second

var (
	servePort    int
	serveMigrate bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Run migrations and seed catalogs before serving")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	if servePort > 0 {
		c.Settings.Server.Port = servePort
	}
	if serveMigrate {
		if err := container.Migrate(c.DB); err != nil {
			return err
		}
		if err := container.Seed(ctx, c.DB); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              c.Settings.Server.Addr(),
		Handler:           router.New(c.RouterConfig()),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		closeLogged(sqlDB, "database")
	}
	return nil
}

func closeLogged(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		config.Logger.WithError(err).Warn("Failed to close " + what)
	}
}

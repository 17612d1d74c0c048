package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/server"
)

var listenFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the field guide website",
	Long: `Starts the HTTP server rendering the catalog, plant detail and about
pages, with a JSON API and Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("listen") {
		globalConfig.Server.Listen = listenFlag
	}

	provider, err := newProvider()
	if err != nil {
		return err
	}

	handler, err := server.New(provider)
	if err != nil {
		return fmt.Errorf("failed to set up server: %w", err)
	}

	srv := &http.Server{
		Addr:              globalConfig.Server.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Serving field guide on %s", globalConfig.Server.Listen)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		log.Infof("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("Server stopped.")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/codefionn/calcschnell/internal/logger"
	"github.com/codefionn/calcschnell/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start an HTTP server exposing the evaluator:

  GET    /health
  POST   /v1/evaluate   {"expression": "2+3*4"}
  GET    /v1/history?limit=N
  DELETE /v1/history

The server stops gracefully on SIGINT or SIGTERM. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.ServeAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		opts := server.Options{
			Addr:      addr,
			Precision: a.cfg.Precision,
			Logger:    logger.NewSlog(logger.Global().WithPrefix("http")),
		}
		if a.history != nil {
			opts.History = a.history
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, server.New(opts))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides serve_addr from the config")
}

// serve runs srv until it fails or ctx is done, then shuts it down
func serve(ctx context.Context, srv *server.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
		if err := srv.Stop(context.Background()); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/internal/devserver"
)

var (
	addr    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "quill-devd",
	Short: "An in-memory note service for local development",
	Long: `quill-devd serves the note service's API surface from process
memory: signup, login, and per-user note CRUD behind bearer tokens.
Everything is lost on exit. Point quill at it with --server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		server := &http.Server{
			Addr:    addr,
			Handler: devserver.New(logger).Router(),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("dev server listening", "addr", addr)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("dev server stopped")
		return nil
	},
}

func main() {
	rootCmd.Flags().StringVar(&addr, "addr", ":8081", "Listen address")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

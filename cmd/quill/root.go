package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/quill/internal/platform"
)

var (
	verbose    bool
	serverURL  string
	configPath string
	offline    bool

	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A terminal client for a personal note-taking service",
	Long: `Quill signs in to a remote note service and drops you into an
interactive shell: a login view, a signup view, and a session-gated notes
view where notes are created, edited and deleted against the server.

The session lives in memory and dies with the process.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real environment wins over it.
		_ = godotenv.Load()

		logLevel.Set(slog.LevelInfo)
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}

		opts := &slog.HandlerOptions{
			Level: logLevel,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Note service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "Run against an in-memory service instead of a server")
}

// loadConfig resolves the effective configuration: file, then environment,
// then flags.
func loadConfig() (platform.Config, string, error) {
	path := configPath
	if path == "" {
		path = platform.DefaultConfigPath()
	}
	cfg, err := platform.LoadConfig(path)
	if err != nil {
		return cfg, path, err
	}
	if serverURL != "" {
		cfg.Server = serverURL
	}
	return cfg, path, nil
}

func applyLogLevel(cfg platform.Config) {
	if verbose {
		return // -v pins debug
	}
	switch cfg.Log {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "warn":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}

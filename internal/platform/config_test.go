package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults When File Missing", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("missing file must not be an error: %v", err)
		}
		if cfg.Server != DefaultConfig().Server {
			t.Errorf("expected default server, got %q", cfg.Server)
		}
	})

	t.Run("Reads YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "server: http://notes.internal:9000\nlog: debug\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server != "http://notes.internal:9000" {
			t.Errorf("expected server from file, got %q", cfg.Server)
		}
		if cfg.Log != "debug" {
			t.Errorf("expected log level from file, got %q", cfg.Log)
		}
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server: http://from-file\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("QUILL_SERVER", "http://from-env")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server != "http://from-env" {
			t.Errorf("environment must win, got %q", cfg.Server)
		}
	})

	t.Run("Malformed File Is An Error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server: [oops\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log: info\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	err := WatchConfig(ctx, path, nil, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchConfig failed: %v", err)
	}

	// Give the watcher a moment to arm before the write.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("log: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Log != "debug" {
			t.Errorf("expected reloaded log level, got %q", cfg.Log)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

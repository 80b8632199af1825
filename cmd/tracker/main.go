// Command tracker manages a teacher's classes, schedule and attendance from
// the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/attendance-tracker/tracker/config"
	"github.com/attendance-tracker/tracker/internal/application/tracker"
	"github.com/attendance-tracker/tracker/internal/infrastructure/messaging"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/bolt"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/postgres"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
	"github.com/attendance-tracker/tracker/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	envFile := os.Getenv("TRACKER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	timeutil.SetLocation(cfg.App.Location)
	log.Debug("starting",
		"app", cfg.App.Name,
		"env", cfg.App.Environment,
		"driver", cfg.Storage.Driver,
		"timezone", timeutil.Location().String(),
	)

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		Logger:        log,
		EnableMetrics: cfg.App.Debug,
	})

	tr, err := tracker.New(ctx, st, bus, tracker.WithLogger(log))
	if err != nil {
		_ = st.Close()
		return err
	}
	defer func() {
		if err := tr.Close(); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	cli := newCommandLine(tr, os.Stdout)
	return cli.run(ctx, args)
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg := postgres.DefaultConfig()
		pg.URL = cfg.Storage.DatabaseURL
		pg.MaxConns = int32(cfg.Storage.MaxConns)
		pg.ConnectAttempts = cfg.Storage.ConnectAttempts
		pg.Logger = log
		return postgres.Open(ctx, pg)
	default:
		return bolt.Open(ctx, cfg.Storage.BoltPath, bolt.Options{
			Timeout:  cfg.Storage.OpenTimeout,
			Attempts: cfg.Storage.OpenAttempts,
			Logger:   log,
		})
	}
}

// setupLogger writes to stderr so command output on stdout stays clean.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	level, _ := cfg.Observability.Level()
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	if cfg.Observability.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

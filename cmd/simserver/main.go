package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skillsim/internal/ai"
	"github.com/udisondev/skillsim/internal/config"
	"github.com/udisondev/skillsim/internal/db"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/observer"
	"github.com/udisondev/skillsim/internal/sim"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.PathFromEnv()
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("skillsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick", cfg.TickDuration)

	simulation, err := sim.New(cfg)
	if err != nil {
		return err
	}
	if err := simulation.LoadScenario(cfg.Scenario); err != nil {
		return err
	}

	var repo *db.StatusRepository
	if cfg.PersistStatuses {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo = db.NewStatusRepository(database.Pool())
		if err := restoreStatuses(ctx, repo, simulation); err != nil {
			return err
		}
	}

	var hub *observer.Hub
	if cfg.Observer.Enabled {
		hub = observer.NewHub(cfg.Observer.SendQueueSize, cfg.Observer.WriteTimeout)
	}

	var snapshots chan map[string][]status.Record
	if repo != nil {
		snapshots = make(chan map[string][]status.Record, 1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting tick loop", "interval", cfg.TickDuration)
		return runTicks(gctx, simulation, ticker{
			interval:         cfg.TickDuration,
			snapshotInterval: cfg.SnapshotInterval,
			hub:              hub,
			snapshots:        snapshots,
		})
	})

	if hub != nil {
		server := observer.NewServer(hub)
		g.Go(func() error {
			if err := server.ListenAndServe(gctx, cfg.Observer.Addr()); err != nil {
				return fmt.Errorf("observer: %w", err)
			}
			return nil
		})
	}

	if repo != nil {
		g.Go(func() error {
			saveSnapshots(gctx, repo, snapshots)
			return nil
		})
	}

	return g.Wait()
}

func restoreStatuses(ctx context.Context, repo *db.StatusRepository, simulation *sim.Simulation) error {
	saved, err := repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading saved statuses: %w", err)
	}
	restored := 0
	for name, recs := range saved {
		if err := simulation.RestoreStatuses(name, recs); err != nil {
			slog.Warn("statuses not restored", "character", name, "err", err)
			continue
		}
		restored += len(recs)
	}
	slog.Info("statuses restored", "characters", len(saved), "statuses", restored)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/schema-bootloader/internal/config"
	"github.com/example/schema-bootloader/internal/migrate"
	"github.com/example/schema-bootloader/internal/runner"
	"github.com/example/schema-bootloader/internal/source"
	"github.com/example/schema-bootloader/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, logger))
}

// run holds the whole pass so deferred connection release executes on
// every exit path, including the failure ones.
func run(ctx context.Context, logger *slog.Logger) int {
	if err := loadEnvFile(); err != nil {
		logger.Error("failed to load env file", "error", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		return 1
	}

	var manager store.Manager
	switch cfg.Driver {
	case store.DriverPostgres:
		manager = store.NewPostgresManager(store.DefaultPostgresConfig(cfg.DSN))
	default:
		manager = store.NewSQLiteManager(store.DefaultSQLiteConfig(cfg.DSN))
	}

	db, err := manager.Open(ctx)
	if err != nil {
		logger.Error("failed to connect to target database", "database_id", cfg.DatabaseID, "error", err)
		return 1
	}
	defer releaseTarget(db, logger)

	style := runner.ParamQuestion
	if cfg.Driver == store.DriverPostgres {
		style = runner.ParamDollar
	}

	sqlRunner := runner.NewSQLRunner(db, cfg.TrackingTable, style, logger)
	if err := sqlRunner.EnsureTrackingTable(ctx); err != nil {
		logger.Error("failed to prepare tracking table", "error", err)
		return 1
	}

	orch := migrate.NewOrchestrator(
		source.NewDirScanner(cfg.MigrationsDir),
		migrate.NewSQLLedger(db, cfg.TrackingTable),
		sqlRunner,
		cfg.DatabaseID,
		logger,
	)

	result := orch.Run(ctx)
	if !result.Success {
		return 1
	}
	return 0
}

// releaseTarget closes the target database connection. Release problems
// are logged only; they never change the run verdict.
func releaseTarget(db io.Closer, logger *slog.Logger) {
	if cerr := db.Close(); cerr != nil {
		logger.Error("failed to release database connection", "error", cerr)
	}
}

// loadEnvFile loads BOOTLOADER_ENV_FILE when set, or a plain .env when
// one exists next to the binary's working directory.
func loadEnvFile() error {
	if path := strings.TrimSpace(os.Getenv("BOOTLOADER_ENV_FILE")); path != "" {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

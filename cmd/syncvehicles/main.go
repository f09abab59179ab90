// Command syncvehicles mirrors the tracking provider's device list into the
// vehicles table once and exits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"fleet-mileage-monitor/internal/config"
	"fleet-mileage-monitor/internal/infrastructure/database/postgres"
	"fleet-mileage-monitor/internal/infrastructure/ecuatracker"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/usecase/vehicle"
)

func main() {
	dryRun := pflag.Bool("dry-run", false, "report what would change without writing")
	pflag.Parse()

	if err := run(*dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "vehicle sync failed: %v\n", err)
		logger.Error("Vehicle sync failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		return err
	}

	provider, err := ecuatracker.NewClient(ecuatracker.Config{
		BaseURL:     cfg.Provider.BaseURL,
		UserAPIHash: cfg.Provider.UserAPIHash,
		Timeout:     cfg.Provider.Timeout,
		ReportType:  cfg.Provider.ReportType,
		Lang:        cfg.Provider.Lang,
	}, nil)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := vehicle.NewSyncService(provider, postgres.NewVehicleRepository(db)).Sync(ctx, dryRun)
	if err != nil {
		return err
	}

	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	fmt.Printf("%screated=%d updated=%d skipped=%d\n", prefix, result.Created, result.Updated, result.Skipped)
	return nil
}

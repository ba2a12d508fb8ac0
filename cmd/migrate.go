package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-BeautyBooking/internal/config"
	"github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/migrations"
	settingsRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var seedSettings bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and seed business settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := openDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			return runMigrations(ctx, dbmetrics.Wrap(db, nil), cfg, seedSettings, log)
		},
	}

	cmd.Flags().BoolVar(&seedSettings, "seed-settings", true, "insert business settings from the config file if the row is missing")
	return cmd
}

// runMigrations применяет миграции и при необходимости создаёт запись настроек
func runMigrations(ctx context.Context, db *dbmetrics.DB, cfg *config.Config, seedSettings bool, log *logger.Logger) error {
	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if len(applied) == 0 {
		log.Info("Database schema is up to date")
	}
	for _, name := range applied {
		log.Info("Applied migration %s", name)
	}

	if !seedSettings {
		return nil
	}

	defaults, err := cfg.Business.Settings()
	if err != nil {
		return err
	}
	created, err := settingsRepo.NewRepository(db).CreateIfMissing(ctx, defaults)
	if err != nil {
		return fmt.Errorf("seed business settings: %w", err)
	}
	if created {
		log.Info("Business settings seeded from configuration (%s)", defaults.BusinessName)
	}
	return nil
}

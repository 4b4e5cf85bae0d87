package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"fridgechef/internal/config"
	"fridgechef/internal/db"
	applog "fridgechef/internal/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		applog.Debug(context.Background(), "no .env file loaded", "error", err)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.SeedDefaultCategories(ctx, database); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	applog.Info(ctx, "default categories seeded", "count", len(db.DefaultCategories))
	return nil
}

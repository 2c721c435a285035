package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"naija-events/internal/config"
	"naija-events/internal/database"
	"naija-events/internal/logger"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
	)
	flag.Parse()

	if !*statusFlag && !*upFlag {
		fmt.Println("Usage:")
		fmt.Println("  migrate -status   # Show migration status")
		fmt.Println("  migrate -up       # Run pending migrations")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Must(cfg.Log)
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	db, err := database.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *upFlag {
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		fmt.Println("All migrations completed successfully")
		return
	}

	states, err := db.MigrationStatus(ctx)
	if err != nil {
		log.Fatal("failed to get migration status", zap.Error(err))
	}
	for _, s := range states {
		mark := "pending"
		if s.Applied {
			mark = "applied"
		}
		fmt.Printf("%03d  %-8s %s\n", s.Version, mark, s.Name)
	}
}

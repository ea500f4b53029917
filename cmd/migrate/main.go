package main

import (
	"context"
	"flag"
	"log"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXPostgresDB(context.Background(), cfg.GetDSN(), cfg.DB)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *down {
		err = database.RollbackMigrations(db.DB)
	} else {
		err = database.RunMigrations(db.DB)
	}
	if err != nil {
		l.Fatal("Migration failed", zap.Error(err))
	}
}

package main

import (
	"flag"
	"log"

	"quiz-folio/internal/config"
	"quiz-folio/internal/database"
	"quiz-folio/internal/logger"

	"go.uber.org/zap"
)

func main() {
	migrationsRoot := flag.String("dir", "database/migrations", "root directory holding one migrations folder per driver")
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

	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, cfg.DB.Driver, *migrationsRoot); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}

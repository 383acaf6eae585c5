package main

import (
	"flag"
	"log"

	"github.com/rexdotsh/praxis/internal/config"
	"github.com/rexdotsh/praxis/internal/database"
	"github.com/rexdotsh/praxis/internal/logger"
)

func main() {
	dir := flag.String("dir", "database/migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	l := logger.Get()
	defer l.Sync()

	db, err := database.NewSQLXDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, *dir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

package main

import (
	"log"
	"os"

	"github.com/wingops/wingscore/internal/bootstrap"
	"github.com/wingops/wingscore/internal/config"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/server"
	"github.com/wingops/wingscore/pkg/database"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seedDir := os.Getenv("SEED_DIR")
	if seedDir == "" {
		seedDir = "seeds"
	}
	if err := bootstrap.Seed(db, seedDir); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	srv := server.NewServer(cfg, db)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Exercise{},
		&model.Score{},
		&model.Report{},
		&model.AccountAction{},
		&model.Wing{},
		&model.RosterEntry{},
		&model.SeedMarker{},
	)
}

// Command cleanup sweeps messages whose session no longer exists. Session
// deletion cascades messages in one transaction, but databases written by
// code predating cascade support (or edited by hand) can hold orphans.
package main

import (
	"context"
	"log"
	"os"

	"llamadesk-be/internal/config"
	"llamadesk-be/internal/repository/implementation"
	"llamadesk-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		color.Yellow("Database file %s not found. Nothing to clean.", cfg.Database.Path)
		return
	}

	db, err := database.NewGormDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Unable to open database: %v", err)
	}

	repo := implementation.NewChatMessageRepository(db)
	removed, err := repo.DeleteOrphaned(context.Background())
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	color.Green("Cleaned up %d orphaned messages.", removed)
}

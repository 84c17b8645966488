package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/labMorim/MavitKanban/internal/board"
	"github.com/labMorim/MavitKanban/internal/config"
	"github.com/labMorim/MavitKanban/internal/prefs"
	"github.com/labMorim/MavitKanban/internal/storage"
	"github.com/labMorim/MavitKanban/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := storage.RunMigrations(cfg.Database.Path, "internal/storage/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := storage.NewStateRepo(db)
	store := board.NewStore()

	collection, ok, err := repo.LoadCollection(ctx)
	if err != nil {
		log.Fatalf("load state: %v", err)
	}
	if !ok {
		collection = seedCollection(store)
		if err := repo.SaveCollection(ctx, collection); err != nil {
			log.Printf("warn: initial save failed: %v", err)
		}
	}

	background, _, err := repo.Load(ctx, storage.KeyBackground)
	if err != nil {
		log.Printf("warn: background preference unavailable: %v", err)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, repo, store, collection, background), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// seedCollection prefers the plain-file backup over an empty board so a
// wiped database does not lose the user's boards.
func seedCollection(store *board.Store) board.Collection {
	if boards, err := prefs.LoadSnapshot(); err == nil && len(boards) > 0 {
		return board.Collection{Boards: boards}.Normalize()
	}
	return store.AddBoard(board.Collection{}, "My Board")
}

package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/rnwolfe/lorefind/internal/lorebook"
	"github.com/rnwolfe/lorefind/internal/store"
	"github.com/rnwolfe/lorefind/internal/ui"
)

// lastSourceKey remembers the most recent --file so it can be omitted.
const lastSourceKey = "last_source"

// loadSource loads the book at path, falling back to the last used file.
// A successfully loaded path becomes the new default.
func loadSource(db *store.DB, path string) (*lorebook.Book, string, error) {
	if path == "" && db != nil {
		last, err := db.Get(lastSourceKey)
		if err != nil {
			log.Printf("warning: reading last source: %v", err)
		}
		path = last
	}
	if path == "" {
		return nil, "", fmt.Errorf("no candidate file given (use %s)", ui.Accent.Render("--file <path>"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolving %s: %w", path, err)
	}

	book, err := lorebook.Load(abs)
	if err != nil {
		return nil, "", err
	}

	if db != nil {
		if err := db.Set(lastSourceKey, abs); err != nil {
			log.Printf("warning: saving last source: %v", err)
		}
	}
	return book, abs, nil
}

// openStore opens the database. Failure is non-fatal: callers get nil and a
// warning is logged, since history is optional.
func openStore() *store.DB {
	db, err := store.Open()
	if err != nil {
		log.Printf("warning: opening store: %v", err)
		return nil
	}
	return db
}

package database

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// OpenReviewDB opens the embedded document store that holds review documents.
// Review traffic is tiny compared to the relational store, so the defaults
// are left mostly alone; the WAL stays on for durability.
func OpenReviewDB(dir string) (*pebble.DB, error) {
	opts := &pebble.Options{
		L0CompactionThreshold: 4,
		DisableWAL:            false,
	}
	db, err := pebble.Open(filepath.Clean(dir), opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return db, nil
}

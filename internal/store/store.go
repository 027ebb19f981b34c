// Package store persists the single best score of the game.
package store

import (
	"fmt"

	"github.com/tomz197/byteblaster/internal/config"
)

// Store is a high-score backend. Save never lowers the stored value, so
// several sessions can share one store.
type Store interface {
	Load() (int, error)
	Save(score int) error
	Close() error
}

// Record is the persisted document.
type Record struct {
	HighScore int `json:"high_score" msgpack:"high_score"`
}

// Open returns the backend selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Path), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

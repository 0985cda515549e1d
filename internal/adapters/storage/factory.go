package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xvierd/habit-cli/internal/ports"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// DBFileName is the SQLite database file inside the data directory.
const DBFileName = "habits.db"

// Open creates the storage for backend. For sqlite, path may be a database
// file or a directory; for json it is always the data directory.
func Open(backend, path string) (ports.Storage, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		if path != ":memory:" && filepath.Ext(path) == "" {
			path = filepath.Join(path, DBFileName)
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return New(path)
	case BackendJSON:
		if filepath.Ext(path) != "" {
			path = filepath.Dir(path)
		}
		return NewJSON(path)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}

package server

import (
	"fmt"
	"log"

	"shoplist/internal/shared"
)

// OpenStore builds the backend named in cfg. The returned close func is
// never nil.
func OpenStore(cfg *shared.ServerConfig, logger *log.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case shared.BackendFile:
		fs := NewFileStore(cfg.DataPath(), logger)
		if err := fs.Init(); err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case shared.BackendSQLite:
		db, err := OpenDB(cfg.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open db %s: %w", cfg.DBPath, err)
		}
		return NewSQLiteStore(db), db.Close, nil
	case shared.BackendMemory:
		return NewMemoryStore(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown backend %q", cfg.Backend)
}

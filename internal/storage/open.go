package storage

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// Open returns the backend selected by cfg, bound to its default file name
// inside cfg.DataDir. An empty DataDir means the current directory.
func Open(cfg types.Config) (types.Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch cfg.Backend {
	case types.BackendJSON:
		return NewJSONFile(filepath.Join(dataDir, DefaultJSONFileName)), nil
	case types.BackendSQLite:
		return NewSQLite(filepath.Join(dataDir, DefaultSQLiteFileName)), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}

package storage

import (
	"context"
	"errors"
	"strings"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

// Store is the ledger persistence API used by the sinks and the HTTP
// surface.
type Store interface {
	// Append adds one record to the end of the ledger.
	Append(ctx context.Context, rec lead.Record) error
	// List returns every stored record in append order. A missing
	// ledger yields an empty slice, not an error.
	List(ctx context.Context) ([]lead.Record, error)
	Close() error
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown ledger driver: " + driver)
	}
}

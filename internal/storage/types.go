package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("ledger disabled")

// Config configures the lead ledger.
//
// Driver values:
//   - "file": JSON array file, whole-file rewrite per append
//   - "sqlite": SQLite database file (requires the sqlite build tag)
//
// An empty Driver means "file".
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

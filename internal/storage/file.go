package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

// fileStore keeps the ledger as a single pretty-printed JSON array so
// the backup stays readable and easy to hand to external tooling.
//
// Every append re-reads and rewrites the whole file: O(n) per lead,
// acceptable only on a low-volume intake path. Appends are serialized
// by the mutex and land via tmp+rename, so concurrent requests within
// one process cannot lose records.
type fileStore struct {
	log logx.Logger

	mu   sync.Mutex
	path string
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("ledger.path is required for file driver")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &fileStore{log: log, path: path}, nil
}

func (s *fileStore) Close() error { return nil }

func (s *fileStore) Append(ctx context.Context, rec lead.Record) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.loadLocked()
	if err != nil {
		// An unreadable ledger must not block new leads; start over and
		// keep the error in the log. Prior data is lost on this path.
		s.log.Warn("ledger file unreadable, treating as empty", logx.Err(err))
		leads = nil
	}
	leads = append(leads, rec)
	return s.writeLocked(leads)
}

func (s *fileStore) List(ctx context.Context) ([]lead.Record, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *fileStore) loadLocked() ([]lead.Record, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var leads []lead.Record
	if err := json.Unmarshal(b, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *fileStore) writeLocked(leads []lead.Record) error {
	b, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

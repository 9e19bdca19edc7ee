// Package ledger adapts the storage layer into the local-backup sink.
package ledger

import (
	"context"

	"leadgate/internal/lead"
	"leadgate/internal/storage"
	logx "leadgate/pkg/logx"
)

const name = "localBackup"

type Sink struct {
	store storage.Store
	log   logx.Logger
}

func New(store storage.Store, log logx.Logger) *Sink {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Sink{store: store, log: log}
}

func (s *Sink) Name() string { return name }

func (s *Sink) Attempt(ctx context.Context, rec lead.Record) bool {
	if s == nil || s.store == nil {
		return false
	}
	if err := s.store.Append(ctx, rec); err != nil {
		s.log.Error("ledger append failed", logx.Err(err), logx.String("lead_id", rec.ID))
		return false
	}
	s.log.Info("lead saved to ledger", logx.String("lead_id", rec.ID))
	return true
}

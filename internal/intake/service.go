// Package intake orchestrates one lead submission: validate, fan out to
// every sink in order, aggregate the per-sink outcomes.
package intake

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"leadgate/internal/lead"
	"leadgate/internal/sink"
	"leadgate/internal/storage"
	logx "leadgate/pkg/logx"
)

// ErrTotalFailure means no sink persisted the lead and the emergency
// ledger retry failed too.
var ErrTotalFailure = errors.New("no sink accepted the lead")

// Registration binds a sink into the fan-out order. Saves marks sinks
// whose success makes the whole submission count as saved;
// notification-only sinks leave it false.
type Registration struct {
	Sink  sink.Sink
	Saves bool
}

type Service struct {
	log      logx.Logger
	store    storage.Store
	sinks    []Registration
	fallback sink.Sink // last-resort ledger retry; may be nil in tests

	now func() time.Time
}

func New(log logx.Logger, store storage.Store, sinks []Registration, fallback sink.Sink) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{log: log, store: store, sinks: sinks, fallback: fallback, now: time.Now}
}

// Result is the aggregate outcome of one submission.
type Result struct {
	Saved    bool
	Fallback bool
	Results  map[string]bool
}

// Submit validates the form, builds the record and attempts every sink
// exactly once, in order. Sinks are independent: each outcome is
// recorded and none blocks the next.
//
// The submission counts as saved when any sink registered with Saves
// succeeded. Otherwise the ledger is retried once; if that also fails,
// ErrTotalFailure is returned alongside the per-sink results. A
// *lead.ValidationError is returned before any sink runs.
func (s *Service) Submit(ctx context.Context, f lead.Form) (res Result, err error) {
	rec, verr := lead.New(f, s.now())
	if verr != nil {
		return Result{}, verr
	}

	// A bug anywhere below must not lose the lead: recover and fall
	// back to one last ledger write.
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("submission pipeline panicked",
				logx.Any("panic", r),
				logx.Stack(string(debug.Stack())),
			)
			res, err = s.rescue(ctx, rec)
		}
	}()

	results := make(map[string]bool, len(s.sinks))
	saved := false
	for _, reg := range s.sinks {
		ok := reg.Sink.Attempt(ctx, rec)
		results[reg.Sink.Name()] = ok
		if ok && reg.Saves {
			saved = true
		}
	}

	s.log.Info("lead processed",
		logx.String("lead_id", rec.ID),
		logx.Bool("saved", saved),
		logx.Any("results", results),
	)

	if saved {
		return Result{Saved: true, Results: results}, nil
	}

	// Nothing persisted the lead; retry the ledger once before giving up.
	if s.fallback != nil && s.fallback.Attempt(ctx, rec) {
		s.log.Warn("lead saved via emergency fallback", logx.String("lead_id", rec.ID))
		return Result{Saved: true, Fallback: true, Results: results}, nil
	}
	return Result{Results: results}, ErrTotalFailure
}

func (s *Service) rescue(ctx context.Context, rec lead.Record) (Result, error) {
	if s.fallback != nil && s.fallback.Attempt(ctx, rec) {
		return Result{Saved: true, Fallback: true}, nil
	}
	return Result{}, ErrTotalFailure
}

// TestIntegrations runs every sink against a fixed synthetic lead and
// reports the per-sink outcomes.
func (s *Service) TestIntegrations(ctx context.Context) map[string]bool {
	rec := lead.Synthetic(s.now())
	results := make(map[string]bool, len(s.sinks))
	for _, reg := range s.sinks {
		results[reg.Sink.Name()] = reg.Sink.Attempt(ctx, rec)
	}
	s.log.Info("integration test completed", logx.Any("results", results))
	return results
}

// Leads returns the full ledger contents in submission order.
func (s *Service) Leads(ctx context.Context) ([]lead.Record, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx)
}

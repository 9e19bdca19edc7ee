package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgate/internal/lead"
	"leadgate/internal/sink"
	logx "leadgate/pkg/logx"
)

// stubSink counts attempts and returns a fixed outcome.
type stubSink struct {
	name  string
	ok    bool
	calls int
	boom  bool
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Attempt(ctx context.Context, rec lead.Record) bool {
	s.calls++
	if s.boom {
		panic("boom")
	}
	return s.ok
}

var _ sink.Sink = (*stubSink)(nil)

func validForm() lead.Form {
	return lead.Form{Name: "Anna Bianchi", Email: "a@b.it", Phone: "+391234"}
}

func newService(regs []Registration, fallback sink.Sink) *Service {
	return New(logx.Nop(), nil, regs, fallback)
}

func TestSubmit_ValidationFailureInvokesNoSink(t *testing.T) {
	ledger := &stubSink{name: "localBackup", ok: true}
	svc := newService([]Registration{{Sink: ledger, Saves: true}}, ledger)

	_, err := svc.Submit(context.Background(), lead.Form{Email: "a@b.it"})

	var verr *lead.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, ledger.calls)
}

func TestSubmit_LedgerAloneCountsAsSaved(t *testing.T) {
	ledger := &stubSink{name: "localBackup", ok: true}
	sheets := &stubSink{name: "googleSheets"}
	tg := &stubSink{name: "telegram"}
	svc := newService([]Registration{
		{Sink: ledger, Saves: true},
		{Sink: sheets, Saves: true},
		{Sink: tg},
	}, ledger)

	res, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.True(t, res.Saved)
	assert.False(t, res.Fallback)
	assert.Equal(t, map[string]bool{
		"localBackup":  true,
		"googleSheets": false,
		"telegram":     false,
	}, res.Results)
	assert.Equal(t, 1, ledger.calls)
	assert.Equal(t, 1, sheets.calls)
	assert.Equal(t, 1, tg.calls)
}

func TestSubmit_EverySinkRunsDespiteFailures(t *testing.T) {
	ledger := &stubSink{name: "localBackup"}
	sheets := &stubSink{name: "googleSheets", ok: true}
	tg := &stubSink{name: "telegram", ok: true}
	svc := newService([]Registration{
		{Sink: ledger, Saves: true},
		{Sink: sheets, Saves: true},
		{Sink: tg},
	}, ledger)

	res, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.True(t, res.Saved)
	assert.Equal(t, 1, tg.calls, "telegram still runs after ledger failure")
	assert.True(t, res.Results["googleSheets"])
}

func TestSubmit_NotificationAloneDoesNotCount(t *testing.T) {
	ledger := &stubSink{name: "localBackup"}
	sheets := &stubSink{name: "googleSheets"}
	tg := &stubSink{name: "telegram", ok: true}
	fallback := &stubSink{name: "localBackup"}
	svc := newService([]Registration{
		{Sink: ledger, Saves: true},
		{Sink: sheets, Saves: true},
		{Sink: tg},
	}, fallback)

	_, err := svc.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrTotalFailure)
	assert.Equal(t, 1, fallback.calls, "fallback ledger retry runs when nothing persisted")
}

func TestSubmit_FallbackRescuesTotalFailure(t *testing.T) {
	failing := &stubSink{name: "localBackup"}
	fallback := &stubSink{name: "localBackup", ok: true}
	svc := newService([]Registration{{Sink: failing, Saves: true}}, fallback)

	res, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.True(t, res.Saved)
	assert.True(t, res.Fallback)
	assert.Equal(t, 1, fallback.calls)
}

func TestSubmit_TotalFailure(t *testing.T) {
	failing := &stubSink{name: "localBackup"}
	svc := newService([]Registration{{Sink: failing, Saves: true}}, failing)

	res, err := svc.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrTotalFailure)
	assert.False(t, res.Saved)
	assert.Equal(t, map[string]bool{"localBackup": false}, res.Results)
}

func TestSubmit_PanicTriggersFallback(t *testing.T) {
	bad := &stubSink{name: "googleSheets", boom: true}
	fallback := &stubSink{name: "localBackup", ok: true}
	svc := newService([]Registration{{Sink: bad, Saves: true}}, fallback)

	res, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.True(t, res.Saved)
	assert.True(t, res.Fallback)
	assert.Equal(t, 1, fallback.calls)
}

func TestSubmit_PanicAndFailedFallback(t *testing.T) {
	bad := &stubSink{name: "googleSheets", boom: true}
	fallback := &stubSink{name: "localBackup"}
	svc := newService([]Registration{{Sink: bad, Saves: true}}, fallback)

	_, err := svc.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrTotalFailure)
}

func TestTestIntegrations_RunsEverySink(t *testing.T) {
	ledger := &stubSink{name: "localBackup", ok: true}
	sheets := &stubSink{name: "googleSheets"}
	tg := &stubSink{name: "telegram", ok: true}
	svc := newService([]Registration{
		{Sink: ledger, Saves: true},
		{Sink: sheets, Saves: true},
		{Sink: tg},
	}, ledger)

	results := svc.TestIntegrations(context.Background())

	assert.Equal(t, map[string]bool{
		"localBackup":  true,
		"googleSheets": false,
		"telegram":     true,
	}, results)
	assert.Equal(t, 1, ledger.calls)
}

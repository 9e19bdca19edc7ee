package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgate/internal/lead"
	"leadgate/internal/storage"
	logx "leadgate/pkg/logx"
)

func TestAttempt_AppendsToStore(t *testing.T) {
	st, err := storage.Open(storage.Config{
		Driver: "file",
		Path:   filepath.Join(t.TempDir(), "leads.json"),
	}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()

	s := New(st, logx.Nop())
	assert.Equal(t, "localBackup", s.Name())

	rec := lead.Synthetic(time.Now())
	require.True(t, s.Attempt(context.Background(), rec))

	got, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
}

func TestAttempt_NilStoreIsFalse(t *testing.T) {
	s := New(nil, logx.Nop())
	assert.False(t, s.Attempt(context.Background(), lead.Synthetic(time.Now())))
}

func TestAttempt_WriteFailureIsFalse(t *testing.T) {
	// Point the ledger at a directory: the rewrite cannot land.
	dir := t.TempDir()
	st, err := storage.Open(storage.Config{Driver: "file", Path: dir}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()

	s := New(st, logx.Nop())
	assert.False(t, s.Attempt(context.Background(), lead.Synthetic(time.Now())))
}

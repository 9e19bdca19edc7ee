package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

func TestRow_HeaderOrderAndLocalizedTimestamp(t *testing.T) {
	rec, err := lead.New(lead.Form{
		Name:           "Anna Bianchi",
		Email:          "a@b.it",
		Phone:          "+391234",
		Challenge:      "troppi processi manuali",
		TimePreference: "Mattina (9-12)",
	}, time.Date(2026, 3, 14, 9, 30, 45, 0, time.UTC))
	require.NoError(t, err)

	loc := time.FixedZone("CET", 60*60)
	row := Row(rec, loc)

	require.Len(t, row, len(Header()))
	assert.Equal(t, "14/03/2026, 10:30:45", row[0])
	assert.Equal(t, "Anna Bianchi", row[1])
	assert.Equal(t, "a@b.it", row[2])
	assert.Equal(t, "+391234", row[3])
	assert.Equal(t, "troppi processi manuali", row[4])
	assert.Equal(t, "Mattina (9-12)", row[5])
	assert.Equal(t, lead.ChannelLabel, row[6])
}

func TestHeader(t *testing.T) {
	assert.Equal(t,
		[]any{"Timestamp", "Name", "Email", "Phone", "Challenge", "TimePreference", "Source"},
		Header())
}

func TestAttempt_UnconfiguredReturnsFalseWithoutIO(t *testing.T) {
	s := New(Config{}, logx.Nop())
	ok := s.Attempt(context.Background(), lead.Synthetic(time.Now()))
	assert.False(t, ok)
}

func TestAttempt_PartialConfigStillInert(t *testing.T) {
	s := New(Config{SpreadsheetID: "sheet-id"}, logx.Nop())
	assert.False(t, s.Attempt(context.Background(), lead.Synthetic(time.Now())))
}

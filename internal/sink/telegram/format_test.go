package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

func TestMessage(t *testing.T) {
	rec, err := lead.New(lead.Form{
		Name:  "Anna Bianchi",
		Email: "a@b.it",
		Phone: "+391234",
	}, time.Date(2026, 3, 14, 9, 30, 45, 0, time.UTC))
	require.NoError(t, err)

	loc := time.FixedZone("CET", 60*60)
	msg := Message(rec, loc)

	assert.Contains(t, msg, "*Name:* Anna Bianchi")
	assert.Contains(t, msg, "*Email:* a@b.it")
	assert.Contains(t, msg, "*Phone:* +391234")
	assert.Contains(t, msg, "*Challenge:* "+lead.PlaceholderNotSpecified)
	assert.Contains(t, msg, "*Time preference:* "+lead.PlaceholderNotSpecified)
	assert.Contains(t, msg, "#lead")
	assert.Contains(t, msg, lead.ChannelLabel)

	// Minute precision, localized; no seconds in a notification feed.
	assert.Contains(t, msg, "14/03/2026, 10:30")
	assert.NotContains(t, msg, "10:30:45")

	assert.True(t, strings.HasPrefix(msg, "🔥"))
}

func TestAttempt_UnconfiguredReturnsFalseWithoutIO(t *testing.T) {
	s := New(Config{}, logx.Nop())
	assert.False(t, s.Attempt(context.Background(), lead.Synthetic(time.Now())))

	s = New(Config{Token: "123:abc"}, logx.Nop())
	assert.False(t, s.Attempt(context.Background(), lead.Synthetic(time.Now())), "chat id missing")
}

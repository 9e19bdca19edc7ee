// Package sink defines the capability shared by every lead destination.
package sink

import (
	"context"

	"leadgate/internal/lead"
)

// A Sink is an independent destination for a submitted lead.
//
// Attempt must never panic and never return an error: every failure
// (network, auth, quota, filesystem, missing configuration) is reduced
// to false at the sink boundary. One sink's failure is invisible to the
// others.
type Sink interface {
	// Name is the key this sink reports under in result maps
	// ("localBackup", "googleSheets", "telegram", ...).
	Name() string
	Attempt(ctx context.Context, rec lead.Record) bool
}

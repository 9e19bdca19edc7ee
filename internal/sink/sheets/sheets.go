// Package sheets mirrors each lead into a Google Sheets spreadsheet.
//
// The sink authenticates lazily with a service-account key on first
// use, prefers a tab named "Leads" over the spreadsheet's first tab,
// and writes a header row once when row 1 is empty. Any remote failure
// is reduced to false; a lead is never lost to a sheet error because
// the ledger sink runs independently.
package sheets

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

const name = "googleSheets"

const (
	leadsTabRange   = "Leads!A:G"
	defaultTabRange = "A:G"
)

// Config holds the spreadsheet target. CredentialsJSON is the raw
// service-account key blob (client_email/private_key) from the
// environment; the sink is inert when either field is empty.
type Config struct {
	CredentialsJSON string
	SpreadsheetID   string
	Timezone        string
}

type Sink struct {
	cfg Config
	log logx.Logger
	loc *time.Location

	mu          sync.Mutex
	svc         *gsheets.Service
	rng         string // resolved append range; empty until probed
	headerReady bool
}

func New(cfg Config, log logx.Logger) *Sink {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Sink{cfg: cfg, log: log, loc: loadLocation(cfg.Timezone, log)}
}

func (s *Sink) Name() string { return name }

func (s *Sink) Attempt(ctx context.Context, rec lead.Record) bool {
	if strings.TrimSpace(s.cfg.CredentialsJSON) == "" || strings.TrimSpace(s.cfg.SpreadsheetID) == "" {
		s.log.Debug("sheets sink not configured, skipping")
		return false
	}

	svc, err := s.service()
	if err != nil {
		s.log.Error("sheets auth failed", logx.Err(err))
		return false
	}

	rng := s.resolveRange(ctx, svc)
	s.ensureHeader(ctx, svc, rng)

	vr := &gsheets.ValueRange{Values: [][]any{Row(rec, s.loc)}}
	_, err = svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		s.log.Error("sheets append failed", logx.Err(err), logx.String("range", rng))
		return false
	}

	s.log.Info("lead appended to sheet", logx.String("lead_id", rec.ID), logx.String("range", rng))
	return true
}

// service builds the Sheets client once. The client is constructed on a
// background context so it outlives the request that triggered it.
func (s *Sink) service() (*gsheets.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.svc != nil {
		return s.svc, nil
	}
	svc, err := gsheets.NewService(context.Background(),
		option.WithCredentialsJSON([]byte(s.cfg.CredentialsJSON)),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	s.svc = svc
	return svc, nil
}

// resolveRange probes for a "Leads" tab and falls back to the first tab
// when the probe says it does not exist. A transient probe error also
// falls back, but is not cached, so the next lead re-probes instead of
// sticking to a possibly wrong tab.
func (s *Sink) resolveRange(ctx context.Context, svc *gsheets.Service) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng != "" {
		return s.rng
	}

	_, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, "Leads!A1:G1").Context(ctx).Do()
	switch {
	case err == nil:
		s.rng = leadsTabRange
	case isMissingRange(err):
		s.log.Warn("Leads tab not found, using first tab")
		s.rng = defaultTabRange
	default:
		s.log.Warn("Leads tab probe failed, using first tab for this lead", logx.Err(err))
		return defaultTabRange
	}
	return s.rng
}

// ensureHeader writes the fixed header when row 1 is empty. Header
// trouble never blocks the row append.
func (s *Sink) ensureHeader(ctx context.Context, svc *gsheets.Service, rng string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.headerReady {
		return
	}

	headerRange := strings.Replace(rng, "A:G", "A1:G1", 1)
	resp, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		s.log.Warn("header probe failed", logx.Err(err))
		return
	}
	if len(resp.Values) > 0 {
		s.headerReady = true
		return
	}

	vr := &gsheets.ValueRange{Values: [][]any{Header()}}
	_, err = svc.Spreadsheets.Values.Update(s.cfg.SpreadsheetID, headerRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		s.log.Warn("header write failed", logx.Err(err))
		return
	}
	s.headerReady = true
}

// isMissingRange reports whether err is the API's answer for a range
// that cannot be addressed (missing tab), as opposed to auth/network
// trouble. Sheets answers an unknown tab with a 400 "unable to parse
// range".
func isMissingRange(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == 400 || gerr.Code == 404
}

func loadLocation(tz string, log logx.Logger) *time.Location {
	if strings.TrimSpace(tz) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn("unknown timezone, falling back to UTC", logx.String("tz", tz), logx.Err(err))
		return time.UTC
	}
	return loc
}

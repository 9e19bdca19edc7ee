//go:build sqlite
// +build sqlite

package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("ledger.path is required for sqlite driver")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log}

	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) Append(ctx context.Context, rec lead.Record) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads(id, at, name, email, phone, challenge, time_preference, first_name, last_name, source)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.Timestamp.Format(time.RFC3339Nano), rec.Name, rec.Email, rec.Phone,
		rec.Challenge, rec.TimePreference, rec.FirstName, rec.LastName, rec.Source,
	)
	return err
}

func (s *sqliteStore) List(ctx context.Context) ([]lead.Record, error) {
	if s == nil || s.db == nil {
		return nil, ErrDisabled
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, name, email, phone, challenge, time_preference, first_name, last_name, source
		 FROM leads ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []lead.Record
	for rows.Next() {
		var rec lead.Record
		var at string
		if err := rows.Scan(&rec.ID, &at, &rec.Name, &rec.Email, &rec.Phone,
			&rec.Challenge, &rec.TimePreference, &rec.FirstName, &rec.LastName, &rec.Source); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			s.log.Warn("unparseable lead timestamp", logx.String("id", rec.ID), logx.Err(err))
		} else {
			rec.Timestamp = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

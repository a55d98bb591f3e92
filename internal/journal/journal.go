// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/journal/journal.go
// Summary: SQLite journal of dispatched events and published state versions.
//
// Records are stored as their contract bytes so a session can be replayed by
// any component, whatever language it is written in.

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/logging"
)

// Current schema version; bump when a table changes shape.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    ts INTEGER NOT NULL,              -- UnixNano
    version INTEGER NOT NULL,         -- TuiState version when dispatched
    record BLOB NOT NULL              -- 16-byte Event
);

CREATE TABLE IF NOT EXISTS states (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    version INTEGER NOT NULL,
    ts INTEGER NOT NULL,
    record BLOB NOT NULL              -- 16-byte TuiState
);

CREATE INDEX IF NOT EXISTS idx_states_version ON states(version);
`

var (
	ErrClosed        = errors.New("journal: closed")
	ErrSchemaVersion = errors.New("journal: unsupported schema version")
	// ErrNoState is returned by LatestState on an empty journal.
	ErrNoState = errors.New("journal: no state recorded")
)

var debugLog = logging.Debug("journal")

// SetVerboseLogging toggles per-record logging.
func SetVerboseLogging(enable bool) {
	logging.Toggle(debugLog, enable)
}

// Entry is one journaled event.
type Entry struct {
	Seq       int64
	Timestamp time.Time
	Version   uint64
	Event     core.Event
}

// Journal appends records to a SQLite file.
type Journal struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db, now: time.Now}, nil
}

func checkSchema(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("journal: read schema version: %w", err)
	}
	if current != schemaVersion {
		return fmt.Errorf("%w: %d (want %d)", ErrSchemaVersion, current, schemaVersion)
	}
	return nil
}

// Record appends an event observed while the state was at version.
func (j *Journal) Record(ev core.Event, version uint64) error {
	rec, _ := ev.MarshalBinary()
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}
	_, err := j.db.Exec("INSERT INTO events (ts, version, record) VALUES (?, ?, ?)",
		j.now().UnixNano(), int64(version), rec)
	if err != nil {
		return fmt.Errorf("journal: record event: %w", err)
	}
	debugLog.Debug("event", "kind", ev.Kind, "version", version)
	return nil
}

// RecordState appends a state snapshot.
func (j *Journal) RecordState(s core.TuiState) error {
	rec, _ := s.MarshalBinary()
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}
	_, err := j.db.Exec("INSERT INTO states (version, ts, record) VALUES (?, ?, ?)",
		int64(s.Version), j.now().UnixNano(), rec)
	if err != nil {
		return fmt.Errorf("journal: record state: %w", err)
	}
	debugLog.Debug("state", "version", s.Version, "width", s.Width, "height", s.Height)
	return nil
}

// Events returns up to limit entries with seq >= fromSeq, oldest first. A
// non-positive limit returns every remaining entry.
func (j *Journal) Events(ctx context.Context, fromSeq int64, limit int) ([]Entry, error) {
	j.mu.Lock()
	db := j.db
	j.mu.Unlock()
	if db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx,
		"SELECT seq, ts, version, record FROM events WHERE seq >= ? ORDER BY seq LIMIT ?",
		fromSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query events: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			ts      int64
			version int64
			rec     []byte
		)
		if err := rows.Scan(&e.Seq, &ts, &version, &rec); err != nil {
			return nil, fmt.Errorf("journal: scan event: %w", err)
		}
		if err := e.Event.UnmarshalBinary(rec); err != nil {
			return nil, fmt.Errorf("journal: event %d: %w", e.Seq, err)
		}
		e.Event = e.Event.Canonical()
		e.Timestamp = time.Unix(0, ts)
		e.Version = uint64(version)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestState returns the most recently recorded snapshot.
func (j *Journal) LatestState(ctx context.Context) (core.TuiState, error) {
	var s core.TuiState
	j.mu.Lock()
	db := j.db
	j.mu.Unlock()
	if db == nil {
		return s, ErrClosed
	}
	var rec []byte
	err := db.QueryRowContext(ctx, "SELECT record FROM states ORDER BY id DESC LIMIT 1").Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNoState
	}
	if err != nil {
		return s, fmt.Errorf("journal: query state: %w", err)
	}
	if err := s.UnmarshalBinary(rec); err != nil {
		return s, fmt.Errorf("journal: decode state: %w", err)
	}
	return s, nil
}

// Close closes the database. Further calls fail with ErrClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

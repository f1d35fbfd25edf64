// Package trials persists every session cycle to SQLite, alongside the CSV
// journal, so the editor and inspect tooling can query history and stats
// without parsing the flat log.
package trials

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS trials (
	trial_id    TEXT PRIMARY KEY,
	outcome     TEXT NOT NULL,
	status      TEXT NOT NULL,
	reason      TEXT,
	actor       TEXT,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS counters (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	shown_count  INTEGER NOT NULL
);

INSERT INTO counters (id, shown_count) VALUES (1, 0)
	ON CONFLICT(id) DO NOTHING;
`

// #endregion schema

// #region store-struct
// Store manages trial history in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region record
// Record inserts a trial and bumps the persistent shown counter in one
// transaction. A missing TrialID or CreatedAt is filled in. Returns the new
// shown count (the original device displayed this as "Answer #N").
func (s *Store) Record(t Trial) (int64, error) {
	if t.TrialID == "" {
		t.TrialID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO trials (trial_id, outcome, status, reason, actor, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.TrialID, t.Outcome, string(t.Status),
		nullIfEmpty(t.Reason), nullIfEmpty(t.Actor),
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert trial: %w", err)
	}

	var count int64
	err = tx.QueryRow(
		`UPDATE counters SET shown_count = shown_count + 1 WHERE id = 1
		 RETURNING shown_count`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("bump counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return count, nil
}

// #endregion record

// #region queries
// Recent returns the most recent trials, newest first.
func (s *Store) Recent(limit int) ([]Trial, error) {
	rows, err := s.db.Query(
		`SELECT trial_id, outcome, status, reason, actor, created_at
		 FROM trials ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()

	var out []Trial
	for rows.Next() {
		var t Trial
		var reason, actor sql.NullString
		var createdStr string
		if err := rows.Scan(&t.TrialID, &t.Outcome, (*string)(&t.Status), &reason, &actor, &createdStr); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		if reason.Valid {
			t.Reason = reason.String
		}
		if actor.Valid {
			t.Actor = actor.String
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountByOutcome returns how many times each outcome was revealed.
func (s *Store) CountByOutcome() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT outcome, COUNT(*) FROM trials GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("count by outcome: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var outcome string
		var n int64
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

// ShownCount reads the persistent trial counter.
func (s *Store) ShownCount() (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT shown_count FROM counters WHERE id = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	return count, nil
}

// #endregion queries

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers

// Package journal is the append-only interaction log: one CSV row per
// completed or failed trial. Rows are flushed and fsynced before Append
// returns, so a record that was acknowledged survives a process crash.
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// #region record

// Record is one interaction: when it happened, what was revealed, and the
// optional device/actor label.
type Record struct {
	At      time.Time
	Outcome string
	Actor   string
}

// #endregion record

// #region journal

var header = []string{"timestamp_utc", "outcome", "actor"}

// Journal appends interaction records to a CSV file. The header is written
// once at creation; existing files are never rewritten or reordered.
type Journal struct {
	path string
	mu   sync.Mutex
}

// Open ensures the log file and its directory exist, writing the CSV header
// when the file is new.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}

	fi, err := os.Stat(path)
	needHeader := err != nil || fi.Size() == 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if needHeader {
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("write journal header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flush journal header: %w", err)
		}
		if err := f.Sync(); err != nil {
			return nil, fmt.Errorf("sync journal header: %w", err)
		}
	}

	return &Journal{path: path}, nil
}

// Append writes one record and returns only after the row reached storage.
func (j *Journal) Append(rec Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{
		rec.At.UTC().Format(time.RFC3339),
		rec.Outcome,
		rec.Actor,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write journal row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush journal row: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}
	return nil
}

// #endregion journal

package config

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// #region store

// Store holds the active configuration snapshot behind an atomic pointer.
// Readers always observe a complete snapshot; a reload swaps the whole value
// in one pointer store, so the read path never blocks. A failed reload keeps
// the previous snapshot active.
type Store struct {
	path   string
	cur    atomic.Pointer[Snapshot]
	logger zerolog.Logger

	// lastMod is touched only by the Watch goroutine.
	lastMod time.Time
}

// NewStore loads the snapshot at path and returns a store serving it.
func NewStore(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger.With().Str("component", "config").Logger(),
	}
	snap, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.cur.Store(&snap)
	if fi, err := os.Stat(path); err == nil {
		s.lastMod = fi.ModTime()
	}
	return s, nil
}

// Snapshot returns the currently active snapshot. Wait-free.
func (s *Store) Snapshot() Snapshot {
	return *s.cur.Load()
}

// Reload re-reads the file and atomically installs the new snapshot. On any
// load or validation error the old snapshot remains active and the error is
// returned for the operator.
func (s *Store) Reload() error {
	snap, err := Load(s.path)
	if err != nil {
		return err
	}
	s.cur.Store(&snap)
	s.logger.Info().Int("outcomes", len(snap.Outcomes)).Msg("configuration reloaded")
	return nil
}

// #endregion store

// #region watch

// Watch polls the config file's mtime and reloads when it changes, until ctx
// is cancelled. Reload failures are logged and leave the old snapshot active;
// the external editor rewrites the file, and a running session picks the
// change up from its next cycle.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fi, err := os.Stat(s.path)
			if err != nil {
				s.logger.Warn().Err(err).Msg("config file unreadable")
				continue
			}
			if !fi.ModTime().After(s.lastMod) {
				continue
			}
			s.lastMod = fi.ModTime()
			if err := s.Reload(); err != nil {
				s.logger.Error().Err(err).Msg("config reload rejected, keeping previous snapshot")
			}
		}
	}
}

// #endregion watch

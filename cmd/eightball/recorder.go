package main

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/danielpatrickdp/eightball/internal/config"
	"github.com/danielpatrickdp/eightball/internal/journal"
	"github.com/danielpatrickdp/eightball/internal/session"
	"github.com/danielpatrickdp/eightball/internal/trials"
)

// #region recorder

// recorder fans one trial record out to the CSV journal and the SQLite trial
// store. Either store may be absent (open failed at startup); a write failure
// is returned to the machine so it can flag degraded logging, but the other
// store still gets its copy.
type recorder struct {
	journal *journal.Journal
	trials  *trials.Store
	logger  zerolog.Logger
	shown   atomic.Int64
}

// newRecorder opens both stores, tolerating failure of either.
func newRecorder(snap config.Snapshot, logger zerolog.Logger) *recorder {
	r := &recorder{logger: logger.With().Str("component", "recorder").Logger()}

	j, err := journal.Open(snap.Paths.Journal)
	if err != nil {
		r.logger.Error().Err(err).Str("path", snap.Paths.Journal).
			Msg("journal unavailable, interaction logging degraded")
	} else {
		r.journal = j
	}

	ts, err := trials.NewStore(snap.Paths.TrialsDB)
	if err != nil {
		r.logger.Error().Err(err).Str("path", snap.Paths.TrialsDB).
			Msg("trial store unavailable, stats disabled")
	} else {
		r.trials = ts
		if n, err := ts.ShownCount(); err == nil {
			r.shown.Store(n)
		}
	}

	return r
}

// Record implements session.Recorder.
func (r *recorder) Record(rec session.TrialRecord) error {
	var firstErr error

	if r.trials != nil {
		status := trials.StatusOK
		if rec.Failed {
			status = trials.StatusError
		}
		n, err := r.trials.Record(trials.Trial{
			TrialID:   rec.TrialID,
			Outcome:   rec.Outcome,
			Status:    status,
			Reason:    rec.Reason,
			Actor:     rec.Actor,
			CreatedAt: rec.At,
		})
		if err != nil {
			firstErr = err
		} else {
			r.shown.Store(n)
		}
	}

	if r.journal != nil {
		err := r.journal.Append(journal.Record{
			At:      rec.At,
			Outcome: rec.Outcome,
			Actor:   rec.Actor,
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// lastShown returns the persistent answer counter for the presenter.
func (r *recorder) lastShown() int64 {
	return r.shown.Load()
}

// Close releases the trial store.
func (r *recorder) Close() {
	if r.trials != nil {
		_ = r.trials.Close()
	}
}

// #endregion recorder

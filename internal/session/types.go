package session

import (
	"time"

	"github.com/danielpatrickdp/eightball/internal/config"
	"github.com/danielpatrickdp/eightball/internal/outcome"
)

// #region state
// State is the session lifecycle phase.
type State string

const (
	Idle     State = "idle"
	Thinking State = "thinking"
	Revealed State = "revealed"
)

// #endregion state

// #region transition
// Transition is pushed to subscribers on every state change. Outcome is set
// only when entering Revealed. Failed carries the empty-pool case, where the
// revealed text is the error pseudo-outcome.
type Transition struct {
	State   State
	Outcome *outcome.Outcome
	TrialID string
	Failed  bool
	At      time.Time
}

// #endregion transition

// #region collaborators
// ConfigSource supplies the current configuration snapshot. *config.Store
// satisfies it; tests inject a fixed or swappable snapshot.
type ConfigSource interface {
	Snapshot() config.Snapshot
}

// TrialRecord is what the machine persists at the Thinking→Revealed edge:
// exactly one per completed or failed trial, zero for ignored activations.
type TrialRecord struct {
	TrialID string
	At      time.Time
	Outcome string
	Failed  bool
	Reason  string
	Actor   string
}

// Recorder persists trial records. A write failure degrades logging but must
// not break the user-facing cycle.
type Recorder interface {
	Record(rec TrialRecord) error
}

// #endregion collaborators

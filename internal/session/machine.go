// Package session owns the per-activation lifecycle: Idle → Thinking →
// Revealed → Idle, driven by trigger activations and timers. Exactly one
// session is live at a time; activations outside Idle are no-ops (except the
// optional early dismiss).
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danielpatrickdp/eightball/internal/config"
	"github.com/danielpatrickdp/eightball/internal/outcome"
	"github.com/danielpatrickdp/eightball/internal/trigger"
)

// #region machine-struct

// Machine is the session state machine. Collaborators are injected; the
// machine itself owns state, timers, and the single-record-per-trial rule.
type Machine struct {
	src    trigger.Source
	cfg    ConfigSource
	rng    outcome.RNG
	rec    Recorder
	logger zerolog.Logger

	mu        sync.Mutex
	state     State
	startedAt time.Time
	chosen    *outcome.Outcome
	degraded  bool
	subs      []chan Transition
}

// New wires a machine. rec may be nil when nothing should be persisted
// (replay and bring-up runs).
func New(src trigger.Source, cfg ConfigSource, rng outcome.RNG, rec Recorder, logger zerolog.Logger) *Machine {
	return &Machine{
		src:    src,
		cfg:    cfg,
		rng:    rng,
		rec:    rec,
		logger: logger.With().Str("component", "session").Logger(),
		state:  Idle,
	}
}

// State returns the current lifecycle phase.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Degraded reports whether a record write has failed since startup.
func (m *Machine) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}

// #endregion machine-struct

// #region notifier

// Subscribe returns a channel of state transitions for a presentation
// consumer. Sends never block the core: a consumer that falls behind loses
// transitions instead of stalling the session.
func (m *Machine) Subscribe() <-chan Transition {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Transition, 16)
	m.subs = append(m.subs, ch)
	return ch
}

func (m *Machine) notify(tr Transition) {
	m.mu.Lock()
	subs := m.subs
	m.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- tr:
		default:
		}
	}
}

// #endregion notifier

// #region run

// Run drives the session loop until ctx is cancelled. Cancellation stops any
// pending timer and exits without writing a partial record; records are
// written only at the Thinking→Revealed edge.
func (m *Machine) Run(ctx context.Context) error {
	m.src.Arm()
	m.notify(Transition{State: Idle, At: time.Now()})

	var thinkT, revealT *time.Timer
	var thinkC, revealC <-chan time.Time
	// The snapshot captured at Thinking entry is the one the imminent
	// selection uses; a reload installed mid-Thinking applies next cycle.
	var snap config.Snapshot

	stopTimers := func() {
		if thinkT != nil {
			thinkT.Stop()
		}
		if revealT != nil {
			revealT.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimers()
			m.logger.Info().Msg("session loop stopped")
			return nil

		case ev := <-m.src.Events():
			switch m.State() {
			case Idle:
				snap = m.cfg.Snapshot()
				m.toThinking(ev.At)
				thinkT = time.NewTimer(snap.ThinkingDuration())
				thinkC = thinkT.C

			case Revealed:
				if !snap.Behavior.EarlyDismiss {
					continue
				}
				revealT.Stop()
				revealC = nil
				m.toIdle()

			default:
				// Disarmed during Thinking; a late event is a no-op.
			}

		case <-thinkC:
			thinkC = nil
			m.reveal(snap)
			revealT = time.NewTimer(snap.RevealDuration())
			revealC = revealT.C

		case <-revealC:
			revealC = nil
			m.toIdle()
		}
	}
}

// #endregion run

// #region transitions

func (m *Machine) toThinking(at time.Time) {
	m.src.Disarm()
	m.mu.Lock()
	m.state = Thinking
	m.startedAt = at
	m.chosen = nil
	m.mu.Unlock()

	m.logger.Debug().Time("started_at", at).Msg("thinking")
	m.notify(Transition{State: Thinking, At: at})
}

// reveal selects against the snapshot captured at Thinking entry, persists
// exactly one record, and enters Revealed. A selection failure becomes the
// error pseudo-outcome and a failed record; the cycle never hangs.
func (m *Machine) reveal(snap config.Snapshot) {
	now := time.Now()
	trialID := uuid.New().String()

	var chosen outcome.Outcome
	var failed bool
	var reason string

	pool, err := snap.Pool()
	if err == nil {
		chosen, err = outcome.Choose(pool, m.rng)
	}
	if err != nil {
		failed = true
		reason = err.Error()
		chosen = outcome.Outcome{Text: "error: " + reason}
		m.logger.Error().Err(err).Str("trial_id", trialID).Msg("selection failed")
	}

	if m.rec != nil {
		rec := TrialRecord{
			TrialID: trialID,
			At:      now,
			Outcome: chosen.Text,
			Failed:  failed,
			Reason:  reason,
			Actor:   snap.DeviceName,
		}
		if err := m.rec.Record(rec); err != nil {
			// Degraded, not fatal: the user still gets the reveal.
			m.logger.Error().Err(err).Str("trial_id", trialID).Msg("record write failed, logging degraded")
			m.mu.Lock()
			m.degraded = true
			m.mu.Unlock()
		}
	}

	m.mu.Lock()
	m.state = Revealed
	m.chosen = &chosen
	m.mu.Unlock()

	if snap.Behavior.EarlyDismiss {
		m.src.Arm()
	}

	m.logger.Info().Str("trial_id", trialID).Str("outcome", chosen.Text).
		Bool("failed", failed).Msg("revealed")
	m.notify(Transition{State: Revealed, Outcome: &chosen, TrialID: trialID, Failed: failed, At: now})
}

func (m *Machine) toIdle() {
	m.mu.Lock()
	m.state = Idle
	m.chosen = nil
	m.mu.Unlock()

	m.src.Arm()
	m.logger.Debug().Msg("idle")
	m.notify(Transition{State: Idle, At: time.Now()})
}

// #endregion transitions

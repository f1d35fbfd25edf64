// Package trigger abstracts "something happened": a GPIO button edge, a
// keyboard press, or a simulated pulse. Every variant feeds the same debounce
// path, so tests drive the identical pipeline the hardware does.
package trigger

import (
	"errors"
	"sync"
	"time"
)

// #region errors
var (
	// ErrTriggerFault means the hardware line could not be opened or read.
	ErrTriggerFault = errors.New("trigger hardware unavailable")
)

// #endregion errors

// #region activation
// Activation is one logical press, after debouncing.
type Activation struct {
	At time.Time
}

// #endregion activation

// #region source
// Source produces debounced activation events. Disarm makes the source inert
// until Arm is called again; the session state machine disarms the source for
// the whole Thinking/Revealed window.
type Source interface {
	Events() <-chan Activation
	Arm()
	Disarm()
	Close() error
}

// #endregion source

// #region debouncer
// Debouncer collapses bounce on a raw edge feed: an edge within the debounce
// interval of the previously accepted edge is dropped, and a disarmed
// debouncer drops edges entirely. All trigger variants deliver through here.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	armed    bool
	last     time.Time
	events   chan Activation
	now      func() time.Time
}

// NewDebouncer returns an armed debouncer with the given minimum
// inter-activation interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		armed:    true,
		events:   make(chan Activation, 1),
		now:      time.Now,
	}
}

// Events returns the accepted activation stream.
func (d *Debouncer) Events() <-chan Activation {
	return d.events
}

// Arm re-enables edge delivery.
func (d *Debouncer) Arm() {
	d.mu.Lock()
	d.armed = true
	d.mu.Unlock()
}

// Disarm suppresses edges until the next Arm.
func (d *Debouncer) Disarm() {
	d.mu.Lock()
	d.armed = false
	d.mu.Unlock()
}

// Offer delivers a raw edge. It reports whether the edge was accepted; a
// bounced, disarmed, or unconsumed edge is dropped rather than queued, so a
// burst of presses collapses into a single activation.
func (d *Debouncer) Offer() bool {
	d.mu.Lock()
	at := d.now()
	if !d.armed || (!d.last.IsZero() && at.Sub(d.last) < d.interval) {
		d.mu.Unlock()
		return false
	}
	d.last = at
	d.mu.Unlock()

	select {
	case d.events <- Activation{At: at}:
		return true
	default:
		return false
	}
}

// #endregion debouncer

// #region simulated
// Simulated is a Source driven programmatically, for tests and for bring-up
// without hardware.
type Simulated struct {
	*Debouncer
}

// NewSimulated returns a simulated source with the given debounce interval.
func NewSimulated(debounce time.Duration) *Simulated {
	return &Simulated{Debouncer: NewDebouncer(debounce)}
}

// Pulse injects one raw edge through the shared debounce path.
func (s *Simulated) Pulse() bool {
	return s.Offer()
}

// Close is a no-op for the simulated source.
func (s *Simulated) Close() error {
	return nil
}

// #endregion simulated

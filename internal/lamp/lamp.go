// Package lamp drives the arcade button LED from session state: breathing
// while idle, pulsing while thinking, steady during the reveal. This is
// presentation; it subscribes to state transitions and never drives them.
package lamp

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/danielpatrickdp/eightball/internal/session"
)

// #region mode
// Mode is the lamp pattern.
type Mode string

const (
	Off     Mode = "off"
	Breathe Mode = "breathe"
	Pulse   Mode = "pulse"
	Steady  Mode = "steady"
)

// ModeForState maps session state to the lamp pattern.
func ModeForState(s session.State) Mode {
	switch s {
	case session.Idle:
		return Breathe
	case session.Thinking:
		return Pulse
	case session.Revealed:
		return Steady
	default:
		return Off
	}
}

// #endregion mode

// #region sink
// Sink is an on/off output line. The GPIO implementation lives in gpio.go;
// tests use a fake.
type Sink interface {
	Set(on bool) error
}

// #endregion sink

// #region controller

// Blink periods for the binary line: a slow blink reads as breathing, a fast
// one as nervous pulsing.
const (
	tickInterval  = 50 * time.Millisecond
	breathePeriod = 2400 * time.Millisecond
	pulsePeriod   = 300 * time.Millisecond
)

// Controller consumes session transitions and runs the lamp pattern.
type Controller struct {
	sink   Sink
	logger zerolog.Logger

	mu   sync.Mutex
	mode Mode

	lastOn    bool
	lastValid bool
}

// NewController returns a controller starting in Off.
func NewController(sink Sink, logger zerolog.Logger) *Controller {
	return &Controller{
		sink:   sink,
		logger: logger.With().Str("component", "lamp").Logger(),
		mode:   Off,
	}
}

// Mode returns the current pattern. Observable invariant for tests:
// mode == ModeForState(session state).
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Run applies transitions and drives the pattern until ctx is cancelled.
func (c *Controller) Run(ctx context.Context, transitions <-chan session.Transition) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			c.set(false)
			return
		case tr, ok := <-transitions:
			if !ok {
				c.set(false)
				return
			}
			mode := ModeForState(tr.State)
			c.mu.Lock()
			c.mode = mode
			c.mu.Unlock()
			c.apply(mode, time.Since(start))
		case <-ticker.C:
			c.apply(c.Mode(), time.Since(start))
		}
	}
}

func (c *Controller) apply(mode Mode, elapsed time.Duration) {
	switch mode {
	case Off:
		c.set(false)
	case Steady:
		c.set(true)
	case Breathe:
		c.set(elapsed%breathePeriod < breathePeriod/2)
	case Pulse:
		c.set(elapsed%pulsePeriod < pulsePeriod/2)
	}
}

// set dedupes writes so the hardware is not spammed with identical values.
func (c *Controller) set(on bool) {
	c.mu.Lock()
	if c.lastValid && c.lastOn == on {
		c.mu.Unlock()
		return
	}
	c.lastOn = on
	c.lastValid = true
	c.mu.Unlock()

	if err := c.sink.Set(on); err != nil {
		c.logger.Warn().Err(err).Msg("lamp write failed")
	}
}

// #endregion controller

package trigger

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/warthog618/go-gpiocdev"
)

// #region gpio
// GPIO is the physical arcade button: a falling-edge line request with
// kernel-level debounce, wired between the pin and ground with pull-up.
// Kernel debounce handles electrical bounce; the shared Debouncer still
// applies the logical minimum inter-activation interval on top, so the
// event path is identical to the keyboard and simulated variants.
type GPIO struct {
	*Debouncer
	line *gpiocdev.Line
}

// NewGPIO requests the button line. Failure is reported as ErrTriggerFault so
// the caller can fall back to the keyboard source when configured.
func NewGPIO(chip string, pin int, debounce time.Duration, logger zerolog.Logger) (*GPIO, error) {
	g := &GPIO{Debouncer: NewDebouncer(debounce)}
	log := logger.With().Str("component", "trigger").Logger()

	line, err := gpiocdev.RequestLine(chip, pin,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			if evt.Type != gpiocdev.LineEventFallingEdge {
				return
			}
			g.Offer()
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s pin %d: %v", ErrTriggerFault, chip, pin, err)
	}
	g.line = line

	log.Info().Str("chip", chip).Int("pin", pin).Dur("debounce", debounce).
		Msg("gpio button ready")
	return g, nil
}

// Close releases the line.
func (g *GPIO) Close() error {
	return g.line.Close()
}

// #endregion gpio

package trigger

import (
	"bufio"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// #region keyboard
// Keyboard treats each line of input (Enter) as a button press. It is the
// development path on machines without GPIO and the fallback when the
// hardware line cannot be opened.
type Keyboard struct {
	*Debouncer
	done chan struct{}
}

// NewKeyboard starts reading line-delimited input from r (stdin in the
// daemon). Each line goes through the same debounce path as a hardware edge.
func NewKeyboard(r io.Reader, debounce time.Duration, logger zerolog.Logger) *Keyboard {
	k := &Keyboard{
		Debouncer: NewDebouncer(debounce),
		done:      make(chan struct{}),
	}
	log := logger.With().Str("component", "trigger").Logger()

	go func() {
		defer close(k.done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			k.Offer()
		}
		if err := scanner.Err(); err != nil {
			log.Warn().Err(err).Msg("keyboard input closed")
		}
	}()

	return k
}

// Close stops accepting input. The reader goroutine exits when r reaches EOF.
func (k *Keyboard) Close() error {
	k.Disarm()
	return nil
}

// #endregion keyboard

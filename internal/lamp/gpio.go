package lamp

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// #region gpio-sink
// GPIOSink drives the lamp through a GPIO output line.
type GPIOSink struct {
	line       *gpiocdev.Line
	activeHigh bool
}

// NewGPIOSink requests the lamp line as an output, initially off.
func NewGPIOSink(chip string, pin int, activeHigh bool) (*GPIOSink, error) {
	initial := 0
	if !activeHigh {
		initial = 1
	}
	line, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsOutput(initial))
	if err != nil {
		return nil, fmt.Errorf("request lamp %s pin %d: %w", chip, pin, err)
	}
	return &GPIOSink{line: line, activeHigh: activeHigh}, nil
}

// Set writes the line, honoring active-high/active-low wiring.
func (s *GPIOSink) Set(on bool) error {
	v := 0
	if on == s.activeHigh {
		v = 1
	}
	return s.line.SetValue(v)
}

// Close turns the lamp off and releases the line.
func (s *GPIOSink) Close() error {
	_ = s.Set(false)
	return s.line.Close()
}

// #endregion gpio-sink

package trigger

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// #region helpers

// fakeClock lets tests step the debouncer's notion of time.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func clockedDebouncer(interval time.Duration) (*Debouncer, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)}
	d := NewDebouncer(interval)
	d.now = clk.now
	return d, clk
}

func drain(d *Debouncer) int {
	n := 0
	for {
		select {
		case <-d.Events():
			n++
		default:
			return n
		}
	}
}

// #endregion helpers

// #region debounce-tests

func TestDebouncer_DropsEdgesInsideWindow(t *testing.T) {
	d, clk := clockedDebouncer(150 * time.Millisecond)

	if !d.Offer() {
		t.Fatalf("first edge should be accepted")
	}
	clk.advance(50 * time.Millisecond)
	if d.Offer() {
		t.Errorf("edge 50ms after accept should be dropped")
	}
	clk.advance(200 * time.Millisecond)
	// The prior activation is still unconsumed, so the channel is full and
	// the burst collapses into the one pending activation.
	if d.Offer() {
		t.Errorf("edge with unconsumed activation should be dropped")
	}
	if got := drain(d); got != 1 {
		t.Errorf("expected exactly 1 activation, got %d", got)
	}
}

func TestDebouncer_AcceptsSpacedEdges(t *testing.T) {
	d, clk := clockedDebouncer(150 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if !d.Offer() {
			t.Fatalf("edge %d should be accepted", i)
		}
		if got := drain(d); got != 1 {
			t.Fatalf("edge %d: expected 1 activation, got %d", i, got)
		}
		clk.advance(200 * time.Millisecond)
	}
}

func TestDebouncer_DisarmedDropsEverything(t *testing.T) {
	d, clk := clockedDebouncer(10 * time.Millisecond)

	d.Disarm()
	for i := 0; i < 5; i++ {
		if d.Offer() {
			t.Errorf("disarmed edge %d should be dropped", i)
		}
		clk.advance(time.Second)
	}
	if got := drain(d); got != 0 {
		t.Errorf("expected no activations while disarmed, got %d", got)
	}

	d.Arm()
	if !d.Offer() {
		t.Errorf("edge after re-arm should be accepted")
	}
}

func TestDebouncer_DisarmWindowDoesNotQueue(t *testing.T) {
	d, clk := clockedDebouncer(10 * time.Millisecond)

	d.Disarm()
	d.Offer()
	clk.advance(time.Second)
	d.Arm()

	// Nothing delivered later for edges that arrived while disarmed.
	if got := drain(d); got != 0 {
		t.Errorf("disarmed edges leaked: %d", got)
	}
}

// #endregion debounce-tests

// #region source-tests

func TestSimulated_PulseGoesThroughDebounce(t *testing.T) {
	s := NewSimulated(time.Hour)
	s.Debouncer.now = (&fakeClock{t: time.Unix(0, 0)}).now

	if !s.Pulse() {
		t.Fatalf("first pulse should be accepted")
	}
	if s.Pulse() {
		t.Errorf("second pulse inside debounce window should be dropped")
	}
	if got := drain(s.Debouncer); got != 1 {
		t.Errorf("expected 1 activation, got %d", got)
	}
}

func TestKeyboard_LinesBecomeActivations(t *testing.T) {
	r, w := io.Pipe()
	k := NewKeyboard(r, 0, zerolog.Nop())
	defer k.Close()

	if _, err := io.Copy(w, strings.NewReader("\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-k.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("no activation for keyboard line")
	}
	w.Close()
}

// #endregion source-tests

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/danielpatrickdp/eightball/internal/config"
	"github.com/danielpatrickdp/eightball/internal/lamp"
	"github.com/danielpatrickdp/eightball/internal/session"
	"github.com/danielpatrickdp/eightball/internal/trigger"
)

// #region main

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	simulate := flag.Bool("simulate", false, "force the keyboard trigger (Enter = press), for bring-up without hardware")
	watchInterval := flag.Duration("watch-interval", 2*time.Second, "config file poll interval")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	store, err := config.NewStore(*configPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("configuration invalid")
	}
	snap := store.Snapshot()

	if lvl, err := zerolog.ParseLevel(snap.Log.Level); err == nil {
		logger = logger.Level(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage failures degrade logging but do not stop the device; the
	// trigger is the one collaborator the device cannot run without.
	rec := newRecorder(snap, logger)
	defer rec.Close()

	src, err := buildSource(snap, *simulate, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("no usable trigger source")
	}
	defer src.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	machine := session.New(src, store, rng, rec, logger)

	go store.Watch(ctx, *watchInterval)

	if snap.Lamp.Enabled {
		sink, err := lamp.NewGPIOSink(snap.Lamp.GPIOChip, snap.Lamp.Pin, snap.Lamp.ActiveHigh)
		if err != nil {
			logger.Warn().Err(err).Msg("lamp unavailable, continuing without it")
		} else {
			defer sink.Close()
			go lamp.NewController(sink, logger).Run(ctx, machine.Subscribe())
		}
	}

	go present(ctx, machine.Subscribe(), rec)

	logger.Info().Str("device", snap.DeviceName).Int("outcomes", len(snap.Outcomes)).
		Msg("eightball ready")
	if err := machine.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("session loop failed")
	}
}

// #endregion main

// #region presenter

// present is the console presentation layer: it consumes transitions and
// renders them as text, never driving the state machine.
func present(ctx context.Context, transitions <-chan session.Transition, rec *recorder) {
	for {
		select {
		case <-ctx.Done():
			return
		case tr := <-transitions:
			switch tr.State {
			case session.Idle:
				fmt.Println("MAGIC 8-BALL — press the button")
			case session.Thinking:
				fmt.Println("shaking the 8-ball...")
			case session.Revealed:
				if tr.Outcome != nil {
					if n := rec.lastShown(); n > 0 {
						fmt.Printf("\n    %s    (answer #%d)\n\n", tr.Outcome.Text, n)
					} else {
						fmt.Printf("\n    %s\n\n", tr.Outcome.Text)
					}
				}
			}
		}
	}
}

// #endregion presenter

// #region trigger-wiring

// buildSource selects the trigger variant. GPIO open failure falls back to
// the keyboard path when configured; with no fallback the device has no way
// to be used, which is fatal at startup.
func buildSource(snap config.Snapshot, simulate bool, logger zerolog.Logger) (trigger.Source, error) {
	if simulate || snap.Trigger.Source == "keyboard" {
		return trigger.NewKeyboard(os.Stdin, snap.Debounce(), logger), nil
	}

	src, err := trigger.NewGPIO(snap.Trigger.GPIOChip, snap.Trigger.ButtonPin, snap.Debounce(), logger)
	if err != nil {
		if errors.Is(err, trigger.ErrTriggerFault) && snap.Trigger.KeyboardFallback {
			logger.Warn().Err(err).Msg("gpio unavailable, falling back to keyboard trigger")
			return trigger.NewKeyboard(os.Stdin, snap.Debounce(), logger), nil
		}
		return nil, err
	}
	return src, nil
}

// #endregion trigger-wiring

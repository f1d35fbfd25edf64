package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/danielpatrickdp/eightball/internal/outcome"
)

// #region snapshot

// Snapshot is an immutable configuration value: the outcome pool definition,
// animation timings, trigger/lamp wiring, and presentation hints. Snapshots
// are loaded wholesale and replaced wholesale, never partially mutated.
type Snapshot struct {
	Outcomes   []OutcomeConfig `yaml:"outcomes"`
	Behavior   BehaviorConfig  `yaml:"behavior"`
	Trigger    TriggerConfig   `yaml:"trigger"`
	Lamp       LampConfig      `yaml:"lamp"`
	UI         UIConfig        `yaml:"ui"`
	Paths      PathsConfig     `yaml:"paths"`
	Log        LogConfig       `yaml:"log"`
	DeviceName string          `yaml:"device_name" env:"EIGHTBALL_DEVICE_NAME"`
}

// OutcomeConfig is one entry of the outcome list. Color is opaque to the core.
type OutcomeConfig struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
	Color  string  `yaml:"color"`
}

// BehaviorConfig holds the session timings.
type BehaviorConfig struct {
	ThinkingSeconds float64 `yaml:"thinking_seconds" env:"EIGHTBALL_THINKING_SECONDS" env-default:"2.2"`
	RevealSeconds   float64 `yaml:"reveal_seconds" env:"EIGHTBALL_REVEAL_SECONDS" env-default:"20"`
	EarlyDismiss    bool    `yaml:"early_dismiss" env:"EIGHTBALL_EARLY_DISMISS" env-default:"false"`
}

// TriggerConfig selects and tunes the activation source.
type TriggerConfig struct {
	Source           string `yaml:"source" env:"EIGHTBALL_TRIGGER_SOURCE" env-default:"gpio"`
	GPIOChip         string `yaml:"gpio_chip" env-default:"gpiochip0"`
	ButtonPin        int    `yaml:"button_pin" env:"EIGHTBALL_BUTTON_PIN" env-default:"17"`
	DebounceMillis   int    `yaml:"debounce_ms" env-default:"150"`
	KeyboardFallback bool   `yaml:"keyboard_fallback" env-default:"true"`
}

// LampConfig wires the arcade button lamp.
type LampConfig struct {
	Enabled    bool   `yaml:"enabled" env-default:"false"`
	GPIOChip   string `yaml:"gpio_chip" env-default:"gpiochip0"`
	Pin        int    `yaml:"pin" env-default:"27"`
	ActiveHigh bool   `yaml:"active_high" env-default:"true"`
}

// UIConfig is parsed and passed through to the presentation layer unchanged.
type UIConfig struct {
	Fullscreen bool   `yaml:"fullscreen" env-default:"false"`
	Theme      string `yaml:"theme"`
}

// PathsConfig locates the on-disk stores.
type PathsConfig struct {
	Journal  string `yaml:"journal" env:"EIGHTBALL_JOURNAL" env-default:"logs/interactions.csv"`
	TrialsDB string `yaml:"trials_db" env:"EIGHTBALL_TRIALS_DB" env-default:"trials.db"`
}

// LogConfig controls daemon logging.
type LogConfig struct {
	Level string `yaml:"level" env:"EIGHTBALL_LOG_LEVEL" env-default:"info"`
}

// #endregion snapshot

// #region accessors

// ThinkingDuration returns the thinking phase length.
func (s Snapshot) ThinkingDuration() time.Duration {
	return time.Duration(s.Behavior.ThinkingSeconds * float64(time.Second))
}

// RevealDuration returns the reveal phase length.
func (s Snapshot) RevealDuration() time.Duration {
	return time.Duration(s.Behavior.RevealSeconds * float64(time.Second))
}

// Debounce returns the trigger debounce interval.
func (s Snapshot) Debounce() time.Duration {
	return time.Duration(s.Trigger.DebounceMillis) * time.Millisecond
}

// Pool builds the outcome pool from the snapshot's outcome list.
func (s Snapshot) Pool() (outcome.Pool, error) {
	members := make([]outcome.Outcome, len(s.Outcomes))
	for i, o := range s.Outcomes {
		members[i] = outcome.Outcome{Text: o.Text, Weight: o.Weight, Color: o.Color}
	}
	return outcome.NewPool(members)
}

// #endregion accessors

// #region load

// Load reads and validates a snapshot from a YAML file; environment variables
// override file values. Validation reports every violation, not only the
// first, so an editor can surface the complete list.
func Load(path string) (Snapshot, error) {
	var s Snapshot
	if err := cleanenv.ReadConfig(path, &s); err != nil {
		return Snapshot{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Validate(s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// #endregion load

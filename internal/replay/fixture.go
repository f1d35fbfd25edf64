// Package replay verifies selector determinism: a fixture pins a pool, a
// seed, and the outcome sequence that seed must produce, and the harness
// re-draws and compares. Regressions in the weighted scan or the RNG wiring
// show up as fixture mismatches.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/eightball/internal/outcome"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string           `json:"description"`
	Pool        []FixtureOutcome `json:"pool"`
	Seed        int64            `json:"seed"`
	Expected    []string         `json:"expected"`
}

// FixtureOutcome mirrors outcome.Outcome with JSON tags.
type FixtureOutcome struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
	Color  string  `json:"color,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToPool converts the fixture pool definition to a domain pool.
func (f *Fixture) ToPool() (outcome.Pool, error) {
	members := make([]outcome.Outcome, len(f.Pool))
	for i, o := range f.Pool {
		members[i] = outcome.Outcome{Text: o.Text, Weight: o.Weight, Color: o.Color}
	}
	return outcome.NewPool(members)
}

// #endregion fixture-loader

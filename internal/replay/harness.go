package replay

import (
	"math/rand"

	"github.com/danielpatrickdp/eightball/internal/outcome"
)

// #region types
// Result captures one replayed draw against its expectation.
type Result struct {
	Index    int
	Expected string
	Got      string
	Match    bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total      int
	Matches    int
	Mismatches int
}

// #endregion types

// #region replay
// Run re-draws the fixture's expected sequence with a freshly seeded RNG.
// Operates entirely in-memory.
func Run(f *Fixture) ([]Result, error) {
	pool, err := f.ToPool()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(f.Seed))
	results := make([]Result, 0, len(f.Expected))
	for i, expected := range f.Expected {
		o, err := outcome.Choose(pool, rng)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Index:    i,
			Expected: expected,
			Got:      o.Text,
			Match:    o.Text == expected,
		})
	}
	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Match {
			s.Matches++
		} else {
			s.Mismatches++
		}
	}
	return s
}

// #endregion replay

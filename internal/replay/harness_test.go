package replay

import (
	"math/rand"
	"testing"

	"github.com/danielpatrickdp/eightball/internal/outcome"
)

// #region helpers

func testFixture(t *testing.T, seed int64, draws int) *Fixture {
	t.Helper()
	f := &Fixture{
		Description: "generated",
		Pool: []FixtureOutcome{
			{Text: "Yes", Weight: 10},
			{Text: "No", Weight: 8},
			{Text: "Ask again later", Weight: 5},
		},
		Seed: seed,
	}

	// Record the sequence the seed actually produces; replaying the fixture
	// must reproduce it exactly.
	pool, err := f.ToPool()
	if err != nil {
		t.Fatalf("to pool: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < draws; i++ {
		o, err := outcome.Choose(pool, rng)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		f.Expected = append(f.Expected, o.Text)
	}
	return f
}

// #endregion helpers

// #region harness-tests

func TestRun_SameSeedSameSequence(t *testing.T) {
	f := testFixture(t, 42, 30)

	results, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	s := Summarize(results)
	if s.Total != 30 || s.Mismatches != 0 {
		t.Fatalf("seed 42 did not reproduce its own sequence: %+v", s)
	}
}

func TestRun_DetectsMismatch(t *testing.T) {
	f := testFixture(t, 7, 10)
	// Corrupt one expectation; the harness must flag exactly that index.
	f.Expected[4] = "definitely not an outcome"

	results, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	s := Summarize(results)
	if s.Mismatches != 1 || s.Matches != 9 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if results[4].Match || results[4].Expected != "definitely not an outcome" {
		t.Errorf("mismatch not attributed to index 4: %+v", results[4])
	}
}

func TestRun_EmptyPool(t *testing.T) {
	f := &Fixture{Seed: 1, Expected: []string{"Yes"}}
	if _, err := Run(f); err == nil {
		t.Fatalf("expected error for empty fixture pool")
	}
}

// #endregion harness-tests

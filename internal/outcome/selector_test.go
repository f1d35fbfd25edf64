package outcome

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// #region mock

// scriptedRNG returns values from a pre-set sequence.
type scriptedRNG struct {
	values []float64
	idx    int
}

func (r *scriptedRNG) Float64() float64 {
	v := r.values[r.idx%len(r.values)]
	r.idx++
	return v
}

func yesNoPool(t *testing.T) Pool {
	t.Helper()
	p, err := NewPool([]Outcome{
		{Text: "Yes", Weight: 1},
		{Text: "No", Weight: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

// #endregion mock

// #region pool-tests

func TestNewPool_TotalWeight(t *testing.T) {
	p, err := NewPool([]Outcome{
		{Text: "Yes", Weight: 10},
		{Text: "No", Weight: 8},
		{Text: "Reply hazy, try again", Weight: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalWeight() != 23 {
		t.Errorf("expected total weight 23, got %f", p.TotalWeight())
	}
	if p.Len() != 3 {
		t.Errorf("expected 3 members, got %d", p.Len())
	}
}

func TestNewPool_Empty(t *testing.T) {
	if _, err := NewPool(nil); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestNewPool_NonPositiveTotal(t *testing.T) {
	_, err := NewPool([]Outcome{{Text: "a", Weight: 0}})
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("zero total: expected ErrEmptyPool, got %v", err)
	}

	_, err = NewPool([]Outcome{{Text: "a", Weight: math.Inf(1)}})
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("infinite total: expected ErrEmptyPool, got %v", err)
	}
}

func TestPool_OutcomesCopy(t *testing.T) {
	p := yesNoPool(t)
	got := p.Outcomes()
	got[0].Text = "mutated"
	if p.Outcomes()[0].Text != "Yes" {
		t.Fatalf("pool mutated via returned slice")
	}
}

// #endregion pool-tests

// #region choose-tests

func TestChoose_CumulativeBuckets(t *testing.T) {
	p := yesNoPool(t)

	// Draw 0.3*total lands in the first bucket, 0.7*total in the second.
	o, err := Choose(p, &scriptedRNG{values: []float64{0.3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Text != "Yes" {
		t.Errorf("draw 0.3: expected Yes, got %q", o.Text)
	}

	o, err = Choose(p, &scriptedRNG{values: []float64{0.7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Text != "No" {
		t.Errorf("draw 0.7: expected No, got %q", o.Text)
	}
}

func TestChoose_BucketBoundary(t *testing.T) {
	p := yesNoPool(t)

	// Draw exactly at the first cumulative edge belongs to the second bucket.
	o, err := Choose(p, &scriptedRNG{values: []float64{0.5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Text != "No" {
		t.Errorf("draw at boundary: expected No, got %q", o.Text)
	}

	// Draw zero always selects the first member.
	o, _ = Choose(p, &scriptedRNG{values: []float64{0}})
	if o.Text != "Yes" {
		t.Errorf("draw 0: expected Yes, got %q", o.Text)
	}
}

func TestChoose_EmptyPool(t *testing.T) {
	_, err := Choose(Pool{}, &scriptedRNG{values: []float64{0.5}})
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestChoose_Deterministic(t *testing.T) {
	p, err := NewPool([]Outcome{
		{Text: "Yes", Weight: 10},
		{Text: "No", Weight: 8},
		{Text: "Ask again later", Weight: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run := func(seed int64) []string {
		rng := rand.New(rand.NewSource(seed))
		seq := make([]string, 50)
		for i := range seq {
			o, err := Choose(p, rng)
			if err != nil {
				t.Fatalf("draw %d: %v", i, err)
			}
			seq[i] = o.Text
		}
		return seq
	}

	a, b := run(42), run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestChoose_ConvergesToWeights(t *testing.T) {
	p, err := NewPool([]Outcome{
		{Text: "Yes", Weight: 10},
		{Text: "No", Weight: 8},
		{Text: "Reply hazy, try again", Weight: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const n = 100000
	rng := rand.New(rand.NewSource(7))
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		o, err := Choose(p, rng)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		counts[o.Text]++
	}

	// Chi-square goodness of fit against weight/W expectations.
	// df=2, p=0.001 critical value is 13.82.
	var chi2 float64
	for _, o := range p.Outcomes() {
		expected := float64(n) * o.Weight / p.TotalWeight()
		diff := float64(counts[o.Text]) - expected
		chi2 += diff * diff / expected
		if counts[o.Text] == 0 {
			t.Errorf("outcome %q with positive weight never selected", o.Text)
		}
	}
	if chi2 > 13.82 {
		t.Errorf("chi-square %.2f exceeds critical value, counts=%v", chi2, counts)
	}
}

// #endregion choose-tests

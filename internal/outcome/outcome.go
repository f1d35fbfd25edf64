package outcome

import (
	"errors"
	"math"
)

// #region errors
var (
	// ErrEmptyPool is returned when a pool has no members or no positive weight mass.
	ErrEmptyPool = errors.New("outcome pool is empty")
)

// #endregion errors

// #region outcome
// Outcome is a single possible answer with a relative probability weight.
// Color is an opaque presentation hint passed through to the display layer.
type Outcome struct {
	Text   string
	Weight float64
	Color  string
}

// #endregion outcome

// #region pool
// Pool is an immutable, ordered set of outcomes with a precomputed total weight.
// Pools are replaced wholesale on config reload, never mutated in place, so a
// selection in progress always sees a self-consistent snapshot.
type Pool struct {
	outcomes    []Outcome
	totalWeight float64
}

// NewPool builds a pool from outcomes. It fails with ErrEmptyPool when there
// are no members or the summed weight is not positive and finite.
func NewPool(outcomes []Outcome) (Pool, error) {
	if len(outcomes) == 0 {
		return Pool{}, ErrEmptyPool
	}

	var total float64
	for _, o := range outcomes {
		total += o.Weight
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return Pool{}, ErrEmptyPool
	}

	own := make([]Outcome, len(outcomes))
	copy(own, outcomes)

	return Pool{outcomes: own, totalWeight: total}, nil
}

// Outcomes returns a copy of the member list in load order.
func (p Pool) Outcomes() []Outcome {
	out := make([]Outcome, len(p.outcomes))
	copy(out, p.outcomes)
	return out
}

// TotalWeight returns the summed weight of all members.
func (p Pool) TotalWeight() float64 {
	return p.totalWeight
}

// Len returns the number of members.
func (p Pool) Len() int {
	return len(p.outcomes)
}

// #endregion pool

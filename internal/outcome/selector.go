package outcome

// #region rng
// RNG abstracts random number generation for deterministic testing.
// *math/rand.Rand satisfies it.
type RNG interface {
	// Float64 returns a random value in [0, 1).
	Float64() float64
}

// #endregion rng

// #region choose
// Choose performs a weighted random selection over the pool: a uniform draw
// in [0, TotalWeight) walks the ordered members accumulating weights, and the
// first member whose cumulative weight exceeds the draw wins. Deterministic
// given a seeded RNG.
func Choose(pool Pool, rng RNG) (Outcome, error) {
	if pool.Len() == 0 || pool.TotalWeight() <= 0 {
		return Outcome{}, ErrEmptyPool
	}

	draw := rng.Float64() * pool.totalWeight

	var cum float64
	for _, o := range pool.outcomes {
		cum += o.Weight
		if draw < cum {
			return o, nil
		}
	}

	// Float accumulation can land the draw a hair past the final cumulative sum.
	return pool.outcomes[len(pool.outcomes)-1], nil
}

// #endregion choose

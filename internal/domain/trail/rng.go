package trail

// RNG is the single source of gameplay randomness. It is a mulberry32
// generator: one uint32 of state, so a session snapshot captures the
// exact mid-sequence position and resuming a save never skips or
// repeats a draw.
type RNG struct {
	state uint32
}

func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// RestoreRNG rebuilds a generator at an exact saved position.
func RestoreRNG(state uint32) *RNG {
	return &RNG{state: state}
}

// Next returns the next float64 in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// NextInt returns an int in [0, max). max <= 0 yields 0.
func (r *RNG) NextInt(max int) int {
	if max <= 0 {
		return 0
	}
	return int(r.Next() * float64(max))
}

// IntBetween returns an int in [min, max], inclusive on both ends.
func (r *RNG) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.NextInt(max-min+1)
}

// FloatBetween returns a float64 in [min, max).
func (r *RNG) FloatBetween(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Next()*(max-min)
}

// Chance performs one Bernoulli trial with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Next() < p
}

// State returns the current position for persistence.
func (r *RNG) State() uint32 {
	return r.state
}

package vmath

// FastRand is a xorshift64 generator
// State is a single word so simulations can snapshot and restore it
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) built from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Chance returns true with probability p
func (r *FastRand) Chance(p float64) bool {
	return r.Float64() < p
}

// State returns the generator word for snapshots
func (r *FastRand) State() uint64 {
	return r.state
}

// Restore replaces the generator word, zero is remapped like in NewFastRand
func (r *FastRand) Restore(state uint64) {
	if state == 0 {
		state = 1
	}
	r.state = state
}

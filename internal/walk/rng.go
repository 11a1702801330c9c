// Package walk implements the random-walk simulation core: direction
// sets, per-walker visitation tracking, the single-walker engine and
// the multi-walker runner. It contains no external dependencies beyond
// the orchestration layer so the simulation stays pure and testable.
package walk

// Source is a deterministic pseudo-random number generator (xorshift64).
// Each walker owns its own Source so multi-walker runs are reproducible
// regardless of execution order.
type Source struct {
	state uint64
}

// NewSource creates a new generator with the given seed.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &Source{state: seed}
}

// DeriveSource creates the generator for one walker from the run seed
// and the walker index. The mix is splitmix64-style so adjacent
// indices produce uncorrelated streams.
func DeriveSource(seed uint64, walker int) *Source {
	z := seed + uint64(walker+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return NewSource(z)
}

// Next returns the next random uint64.
func (s *Source) Next() uint64 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 7
	s.state ^= s.state << 17
	return s.state
}

// Intn returns a random int in [0, n).
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Next() % uint64(n))
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	return float64(s.Next()&0x7FFFFFFFFFFFFFFF) / float64(0x8000000000000000)
}

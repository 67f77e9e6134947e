package core

import "math/rand/v2"

// RandomSource supplies every random decision the simulation makes.
// The engine owns exactly one; the order of calls is part of the
// reproducibility contract.
type RandomSource interface {
	// Direction draws one direction uniformly.
	Direction() Dir
	// ShuffledDirections draws a uniform permutation of the four directions.
	ShuffledDirections() [4]Dir
	// IntN draws uniformly from [0, n). Used by scenario seeding.
	IntN(n int) int
}

// PCGSource is the default RandomSource, a seeded PCG generator.
type PCGSource struct {
	r *rand.Rand
}

// NewRandomSource creates a deterministic source from seed.
func NewRandomSource(seed int64) *PCGSource {
	return &PCGSource{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Direction implements RandomSource.
func (s *PCGSource) Direction() Dir {
	return Directions[s.r.IntN(len(Directions))]
}

// ShuffledDirections implements RandomSource.
func (s *PCGSource) ShuffledDirections() [4]Dir {
	dirs := Directions
	s.r.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}

// IntN implements RandomSource.
func (s *PCGSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

package core_test

import (
	"testing"

	"github.com/vlfom/predator-prey/internal/core"
)

func TestRandomSourceDeterminism(t *testing.T) {
	a := core.NewRandomSource(1337)
	b := core.NewRandomSource(1337)

	for i := 0; i < 200; i++ {
		if da, db := a.Direction(), b.Direction(); da != db {
			t.Fatalf("draw %d: directions differ: %v vs %v", i, da, db)
		}
		if sa, sb := a.ShuffledDirections(), b.ShuffledDirections(); sa != sb {
			t.Fatalf("draw %d: shuffles differ: %v vs %v", i, sa, sb)
		}
	}
}

func TestShuffledDirectionsIsPermutation(t *testing.T) {
	src := core.NewRandomSource(7)

	for i := 0; i < 100; i++ {
		seen := make(map[core.Dir]bool)
		for _, d := range src.ShuffledDirections() {
			seen[d] = true
		}
		if len(seen) != 4 {
			t.Fatalf("shuffle %d is not a permutation: %v", i, seen)
		}
	}
}

func TestRandomSourceCoversAllDirections(t *testing.T) {
	src := core.NewRandomSource(42)

	seen := make(map[core.Dir]int)
	for i := 0; i < 400; i++ {
		seen[src.Direction()]++
	}
	for _, d := range core.Directions {
		if seen[d] == 0 {
			t.Errorf("direction %v never drawn in 400 draws", d)
		}
	}
}

func TestRandomSourceIntN(t *testing.T) {
	src := core.NewRandomSource(3)

	for i := 0; i < 100; i++ {
		if v := src.IntN(5); v < 0 || v >= 5 {
			t.Fatalf("IntN(5) returned %d", v)
		}
	}
	if v := src.IntN(0); v != 0 {
		t.Errorf("IntN(0) should return 0, got %d", v)
	}
}

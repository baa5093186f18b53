package main

import "testing"

func TestPlayoutIsConsistent(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		r, err := playout(int(seed), seed, 200, seed == 1)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if r.Plies == 0 {
			t.Fatalf("seed %d: no plies played", seed)
		}
		if seed == 1 && len(r.Fixtures) < r.Plies {
			t.Fatalf("fixtures: got=%d want>=%d", len(r.Fixtures), r.Plies)
		}
	}
}

func TestPlayoutDeterministic(t *testing.T) {
	a, err := playout(0, 42, 120, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := playout(0, 42, 120, false)
	if err != nil {
		t.Fatal(err)
	}
	if a.Plies != b.Plies || a.Winner != b.Winner || a.Reason != b.Reason {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
}

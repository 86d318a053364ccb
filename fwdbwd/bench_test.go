package fwdbwd_test

import (
	"testing"

	"github.com/katalvlaran/lvlhmm/core"
	"github.com/katalvlaran/lvlhmm/fwdbwd"
)

// benchLattice builds a dense n-candidate lattice with uniform-ish tables.
func benchLattice(n int) (candidates []int, emissions map[int]float64, transitions map[core.Transition[int]]float64) {
	candidates = make([]int, n)
	emissions = make(map[int]float64, n)
	for i := 0; i < n; i++ {
		candidates[i] = i
		emissions[i] = 1.0 / float64(i+1)
	}
	transitions = make(map[core.Transition[int]]float64, n*n)
	for from := 0; from < n; from++ {
		for to := 0; to < n; to++ {
			transitions[core.Transition[int]{From: from, To: to}] = 1.0 / float64(n)
		}
	}

	return candidates, emissions, transitions
}

// benchmarkForwardBackward runs steps forward steps over an n-candidate
// lattice, optionally computing smoothing probabilities at the end.
func benchmarkForwardBackward(b *testing.B, steps, n int, smooth bool) {
	candidates, emissions, transitions := benchLattice(n)
	initial := make(map[int]float64, n)
	for _, candidate := range candidates {
		initial[candidate] = 1.0 / float64(n)
	}

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		fb := fwdbwd.New[int, int]()
		if err := fb.StartWithInitialStateProbabilities(candidates, initial); err != nil {
			b.Fatalf("start failed: %v", err)
		}
		for step := 0; step < steps; step++ {
			if err := fb.NextStep(step, candidates, emissions, transitions); err != nil {
				b.Fatalf("step %d failed: %v", step, err)
			}
		}
		if smooth {
			if _, err := fb.ComputeSmoothingProbabilities(); err != nil {
				b.Fatalf("smoothing failed: %v", err)
			}
		}
	}
}

// BenchmarkForwardBackward_ForwardSmall benchmarks the forward pass over
// 100 steps with 10 candidates each.
func BenchmarkForwardBackward_ForwardSmall(b *testing.B) {
	benchmarkForwardBackward(b, 100, 10, false)
}

// BenchmarkForwardBackward_ForwardMedium benchmarks the forward pass over
// 500 steps with 20 candidates each.
func BenchmarkForwardBackward_ForwardMedium(b *testing.B) {
	benchmarkForwardBackward(b, 500, 20, false)
}

// BenchmarkForwardBackward_SmoothingSmall includes the backward pass over
// 100 steps with 10 candidates each.
func BenchmarkForwardBackward_SmoothingSmall(b *testing.B) {
	benchmarkForwardBackward(b, 100, 10, true)
}

// BenchmarkForwardBackward_SmoothingMedium includes the backward pass over
// 500 steps with 20 candidates each.
func BenchmarkForwardBackward_SmoothingMedium(b *testing.B) {
	benchmarkForwardBackward(b, 500, 20, true)
}

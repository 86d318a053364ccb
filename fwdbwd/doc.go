// Package fwdbwd computes the forward-backward algorithm (smoothing) for
// time-inhomogeneous Hidden Markov Models: the probability of each state
// candidate at each time step given the entire observation sequence.
//
// 🚀 What is forward-backward?
//
//	Where Viterbi answers "which single path is most likely?", the
//	forward-backward pass answers "how likely is each state at each step,
//	given everything observed?". Typical uses:
//	  • Confidence scores for map-matched road candidates
//	  • Soft labels for downstream models
//	  • Log evidence p(o_1..o_T) for model comparison
//
// ✨ Key features:
//   - streaming forward pass: submit one (observation, candidates,
//     emissions, transitions) step at a time
//   - time-inhomogeneous: the candidate set and both probability tables may
//     change at every step
//   - per-step scaling: forward vectors are renormalized each step, so long
//     sequences never underflow; the scaling divisors yield the log
//     evidence as a by-product
//   - on-demand backward pass: smoothing vectors are computed only when
//     requested, from the recorded steps
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvlhmm/fwdbwd"
//
//	fb := fwdbwd.New[string, int]()
//	if err := fb.StartWithInitialStateProbabilities(states, initial); err != nil {
//	  // handle ErrInvalidProbabilities / ErrMissingProbability
//	}
//	for _, step := range steps {
//	  if err := fb.NextStep(step.Obs, step.Candidates, step.Emissions, step.Transitions); err != nil {
//	    // handle ErrMissingProbability / ErrZeroScalingDivisor
//	  }
//	}
//	posteriors, err := fb.ComputeSmoothingProbabilities()
//
// All probabilities in this package are linear (non-log). Use the viterbi
// package when you need the most likely sequence instead.
//
// Performance:
//
//   - Time:   O(T·n²) forward, O(T·n²) backward (n = candidates per step)
//   - Memory: O(T·n²) — every step's tables are recorded for the backward pass
//
// See examples in example_test.go.
package fwdbwd

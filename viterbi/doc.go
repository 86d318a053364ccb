// Package viterbi computes the most likely state sequence of a
// time-inhomogeneous Hidden Markov Model, one observation at a time.
//
// 🚀 What is the Viterbi algorithm?
//
//	Given per-step candidates, emission probabilities and transition
//	probabilities, Viterbi finds argmax p(s_1..s_T | o_1..o_T) — the single
//	best explanation of the observations. The classic stationary variant is
//	described in Rabiner & Juang, "An introduction to Hidden Markov Models",
//	IEEE ASSP Magazine, June 1986; this package implements the
//	time-inhomogeneous generalization, where the state lattice may change
//	at every step. It's widely used in:
//	  • Map matching (snapping GPS traces to road candidates)
//	  • Sequence labeling & decoding
//	  • Signal segmentation
//
// ✨ Key features:
//   - streaming forward pass: submit one step at a time, retrieve the most
//     likely sequence whenever you like
//   - log-space probabilities throughout, so long sequences never underflow
//   - back-pointer chains instead of per-step tables: once the lattice
//     converges to a single path, unreachable history becomes garbage and
//     memory stays O(t)
//   - transition descriptors: attach an arbitrary value (say, the route
//     between two road candidates) to each transition and read it back from
//     the winning sequence — only one descriptor per back pointer is
//     retained, t·n instead of t·n²
//   - HMM-break detection: when every candidate's probability hits zero the
//     engine latches and still serves the best pre-break sequence
//   - optional smoothing hand-off: additionally run a forward-backward pass
//     over the same inputs and annotate the winning sequence with posterior
//     probabilities (roughly doubles time and memory)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvlhmm/viterbi"
//
//	v := viterbi.New[RoadPosition, GPSSample, Route]()
//	if err := v.StartWithInitialObservation(o0, candidates0, emissions0); err != nil {
//	  // handle ErrMissingProbability
//	}
//	for _, s := range steps {
//	  if err := v.NextStep(s.Obs, s.Candidates, s.Emissions, s.Transitions, s.Routes); err != nil {
//	    // handle ErrBroken / ErrMissingProbability
//	  }
//	}
//	sequence := v.ComputeMostLikelySequence()
//
// All probabilities in this package are logarithmic. Use the fwdbwd package
// directly when you need posteriors without the most likely sequence.
//
// Performance:
//
//   - Time:   O(T·n²) (n = candidates per step)
//   - Memory: O(t·n) live back pointers; amortized O(t) once paths converge
//
// See examples in example_test.go.
package viterbi

// Package core defines the shared vocabulary of the lvlhmm engines:
// transition keys, sequence-state records, and the numeric helpers both
// inference passes rely on.
//
// 🚀 What lives here?
//
//	Types and helpers that the viterbi and fwdbwd packages have in common:
//		• Transition — a directed (From, To) state pair, usable as a map key
//		  for caller-supplied transition-probability and descriptor tables
//		• SequenceState — one entry of a retrieved most-likely sequence:
//		  state, observation, winning transition descriptor, and (optionally)
//		  the smoothing probability of the state
//		• Delta, SumsToOne, ProbabilityInRange, LogToLinear — the tolerance
//		  constant and probability checks shared by both engines
//
// ✨ Conventions:
//
//   - States are opaque caller-supplied values; the only requirement is Go
//     comparability, so they can key maps and compare with ==
//   - Iteration order is never taken from a map: every engine walks the
//     caller's candidate slice and uses maps for lookup only
//   - Probabilities are linear in fwdbwd and logarithmic in viterbi; the
//     LogToLinear helper bridges the two for the smoothing hand-off
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvlhmm/core"
//
//	trans := map[core.Transition[string]]float64{
//	  {From: "r1", To: "r2"}: 0.6,
//	  {From: "r1", To: "r3"}: 0.4,
//	}
package core

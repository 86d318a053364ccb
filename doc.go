// Package lvlhmm is your in-memory toolkit for streaming inference over
// time-inhomogeneous Hidden Markov Models — from maximum-likelihood state
// sequences to per-step smoothing posteriors.
//
// 🚀 What is lvlhmm?
//
//	A pure-Go library implementing the two classic HMM inference passes for
//	models whose candidate states, emission probabilities and transition
//	probabilities may change at every time step:
//		• Viterbi: the single most likely state sequence, computed forward
//		  step by step with memory-efficient back-pointer chains
//		• Forward-Backward: smoothing probabilities p(state | all observations)
//		  with per-step scaling against arithmetic underflow
//
// ✨ Why choose lvlhmm?
//
//   - Streaming-first – feed observations one step at a time, retrieve
//     results whenever you like; no need to know the sequence length upfront
//   - Time-inhomogeneous – every step brings its own candidates and its own
//     probability tables, so dynamic lattices (think map matching against a
//     road network) are the native use case, not an afterthought
//   - Type-safe – engines are generic over your state, observation and
//     transition-descriptor types
//   - Deterministic – caller-supplied candidate order drives every iteration
//     and every tie-break
//   - Pure Go – no cgo, no hidden deps
//
// Everything is organized under three subpackages:
//
//	core/    — shared vocabulary: Transition keys, SequenceState records,
//	           probability helpers
//	viterbi/ — most likely sequence engine with HMM-break detection and
//	           optional smoothing hand-off
//	fwdbwd/  — scaled forward-backward engine with on-demand smoothing and
//	           log evidence
//
// Quick ASCII example (map matching, the archetypal application):
//
//	GPS:     o1        o2        o3
//	          \        |         /
//	Roads:  {r1,r2}  {r2,r3}  {r3,r4}     ← candidates per step
//
//	each step supplies emission probs (GPS noise) and transition probs
//	(route plausibility); Viterbi snaps the trace to the best road sequence.
//
//	go get github.com/katalvlaran/lvlhmm
package lvlhmm

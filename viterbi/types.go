// Package viterbi declares the Viterbi engine type, its configuration
// options, and the sentinel errors of the package.
package viterbi

import (
	"errors"

	"github.com/katalvlaran/lvlhmm/fwdbwd"
)

// Sentinel errors returned by the Viterbi engine.
var (
	// ErrNotStarted indicates NextStep was called before either start
	// method.
	ErrNotStarted = errors.New("viterbi: StartWithInitialStateProbabilities or StartWithInitialObservation must be called first")

	// ErrAlreadyStarted indicates a second start call on the same engine.
	// Engines are single-use: one instance per observation sequence.
	ErrAlreadyStarted = errors.New("viterbi: initial probabilities have already been set")

	// ErrBroken indicates NextStep was called after an HMM break was
	// latched. The break itself is not an error: it is reported through
	// IsBroken, and ComputeMostLikelySequence still returns the best
	// sequence up to the last unbroken step.
	ErrBroken = errors.New("viterbi: NextStep must not be called after an HMM break")

	// ErrMissingProbability indicates a candidate listed for a step has no
	// entry in the supplied emission (or initial-probability) table.
	// Missing transition entries are not an error; they denote zero
	// probability (negative infinity in log space).
	ErrMissingProbability = errors.New("viterbi: missing log probability for a listed candidate")
)

// Options configures a Viterbi engine.
//
// KeepMessageHistory            – store a snapshot of the forward message
// (per-state log probability of the best path so far) for every time step,
// for debugging. Retrieval via MessageHistory / MessageHistoryString.
//
// ComputeSmoothingProbabilities – additionally feed every step into an
// embedded fwdbwd engine and annotate the retrieved sequence with the
// smoothing posterior of each winning state. Roughly doubles computation
// time and memory footprint.
type Options struct {
	KeepMessageHistory            bool
	ComputeSmoothingProbabilities bool
}

// Option represents a functional option for configuring a Viterbi engine.
type Option func(*Options)

// WithKeepMessageHistory enables per-step message snapshots for debugging.
func WithKeepMessageHistory() Option {
	return func(o *Options) {
		o.KeepMessageHistory = true
	}
}

// WithComputeSmoothingProbabilities enables the embedded forward-backward
// pass; the retrieved sequence then carries the smoothing probability of
// each winning state. Note that this significantly increases computation
// time and memory footprint.
//
// When the engine is started from initial state probabilities, their linear
// (exponentiated) values must sum to 1 within core.Delta, as required by the
// embedded fwdbwd engine.
func WithComputeSmoothingProbabilities() Option {
	return func(o *Options) {
		o.ComputeSmoothingProbabilities = true
	}
}

// DefaultOptions returns the default engine configuration: no message
// history, no smoothing probabilities.
func DefaultOptions() Options {
	return Options{}
}

// extendedState stores additional information for one candidate of one time
// step. Nodes are chained through backPointer; the engine holds strong
// references only to the nodes of the latest step, so chains unreachable
// from there (or from a retrieved sequence) become garbage-collectible.
type extendedState[S comparable, O, D any] struct {
	state S

	// backPointer points to the previous candidate of the most likely path
	// ending in state. It is nil exactly for step-0 nodes.
	backPointer *extendedState[S, O, D]

	// observation of the node's time step; zero value at step 0 when the
	// engine was started from initial state probabilities.
	observation O

	// transitionDescriptor of the winning incoming transition; zero value
	// at step 0 and when the descriptor table had no entry.
	transitionDescriptor D
}

// Viterbi is a streaming engine computing the most likely state sequence of
// a time-inhomogeneous HMM.
//
// A Viterbi instance is single-use and single-owner: construct one per
// observation sequence and call its methods from one goroutine only.
// All probabilities are logarithmic.
type Viterbi[S comparable, O, D any] struct {
	opts Options

	// message maps each candidate of the latest step to the log probability
	// of the best path ending there; messageCandidates preserves the
	// caller's iteration order over it. Both stay at their pre-break values
	// after an HMM break.
	message           map[S]float64
	messageCandidates []S

	// lastExtendedStates holds the back-pointer chain heads of the latest
	// step, keyed by candidate. At step 0 every candidate has an entry; at
	// later steps, candidates without a finite-probability predecessor have
	// no entry.
	lastExtendedStates map[S]*extendedState[S, O, D]

	prevCandidates []S

	started bool
	broken  bool

	// history of message snapshots, one per step, when enabled.
	history           []map[S]float64
	historyCandidates [][]S

	// fb is the embedded smoothing engine, when enabled.
	fb *fwdbwd.ForwardBackward[S, O]
}

// New constructs a Viterbi engine with the given options. Call one of the
// start methods before submitting steps.
func New[S comparable, O, D any](opts ...Option) *Viterbi[S, O, D] {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	v := &Viterbi[S, O, D]{opts: options}
	if options.ComputeSmoothingProbabilities {
		v.fb = fwdbwd.New[S, O]()
	}

	return v
}

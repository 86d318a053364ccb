// Package fwdbwd declares the ForwardBackward engine type, its per-step
// records, and the sentinel errors of the package.
package fwdbwd

import (
	"errors"

	"github.com/katalvlaran/lvlhmm/core"
)

// Sentinel errors returned by the ForwardBackward engine.
var (
	// ErrNotStarted indicates NextStep or a retrieval method was called
	// before either start method.
	ErrNotStarted = errors.New("fwdbwd: StartWithInitialStateProbabilities or StartWithInitialObservation must be called first")

	// ErrAlreadyStarted indicates a second start call on the same engine.
	// Engines are single-use: one instance per observation sequence.
	ErrAlreadyStarted = errors.New("fwdbwd: initial probabilities have already been set")

	// ErrInvalidProbabilities indicates initial state probabilities that do
	// not sum to 1 within core.Delta.
	ErrInvalidProbabilities = errors.New("fwdbwd: initial state probabilities must sum to 1")

	// ErrMissingProbability indicates a candidate listed for a step has no
	// entry in the supplied emission (or initial-probability) table.
	// Missing transition entries are not an error; they denote zero
	// probability.
	ErrMissingProbability = errors.New("fwdbwd: missing probability for a listed candidate")

	// ErrIndexOutOfRange indicates ForwardProbability was called with a time
	// step outside [0, Steps()).
	ErrIndexOutOfRange = errors.New("fwdbwd: time step out of range")

	// ErrZeroScalingDivisor indicates a step whose unnormalized forward
	// probabilities sum to zero, so the forward vector cannot be
	// renormalized. The step is not recorded.
	ErrZeroScalingDivisor = errors.New("fwdbwd: forward probabilities sum to zero")
)

// step records the internal state of one time step. Every field is a
// defensive snapshot: later caller mutation of the submitted slices or maps
// cannot affect the engine.
type step[S comparable, O any] struct {
	// observation submitted at this step; zero value at step 0 when the
	// engine was started from initial state probabilities.
	observation O

	// candidates in caller-supplied order; drives all iteration.
	candidates []S

	// emissions and transitions of this step; nil at step 0, which has no
	// emission table of its own when state-probability-seeded and whose
	// emission vector is folded into forward when observation-seeded.
	emissions   map[S]float64
	transitions map[core.Transition[S]]float64

	// forward holds the normalized forward probabilities
	// p(state | o_1..o_t), keyed by candidate.
	forward map[S]float64

	// scalingDivisor is the sum of the unnormalized forward probabilities
	// of this step, recorded before normalization. The product over all
	// steps equals p(o_1..o_T).
	scalingDivisor float64
}

// ForwardBackward is a streaming forward-backward engine for
// time-inhomogeneous HMMs.
//
// A ForwardBackward instance is single-use and single-owner: construct one
// per observation sequence and call its methods from one goroutine only.
// All probabilities are linear (non-log).
type ForwardBackward[S comparable, O any] struct {
	// steps holds one record per time step, including the initial step.
	// nil until a start method succeeds.
	steps []step[S, O]

	// prevCandidates caches the candidate order of the latest step for the
	// on-the-fly forward recurrence.
	prevCandidates []S
}

// New constructs an empty ForwardBackward engine. Call one of the start
// methods before submitting steps.
func New[S comparable, O any]() *ForwardBackward[S, O] {
	return &ForwardBackward[S, O]{}
}

package fwdbwd

import (
	"math"

	"github.com/katalvlaran/lvlhmm/core"
)

// ForwardBackward — scaled streaming forward pass
//
// Description:
//
//	The forward recurrence computes, per step, the distribution over state
//	candidates given the observations so far. To keep values in floating
//	range on long sequences, each forward vector is renormalized; the
//	pre-normalization sum (the scaling divisor c_t) is recorded per step.
//
// Algorithm Outline (per step t ≥ 1):
//  1. For each cur ∈ C_t:
//     unnorm[cur] = E_t[cur] · Σ_{prev ∈ C_{t-1}} forward_{t-1}[prev] · T_t(prev, cur)
//     (a missing T_t entry contributes 0)
//  2. c_t = Σ_cur unnorm[cur]
//  3. forward_t[cur] = unnorm[cur] / c_t
//  4. Record (observation, C_t, E_t, T_t, forward_t, c_t) for the backward pass.
//
// The product of all c_t equals p(o_1..o_T); ObservationLogProbability
// returns its logarithm.
//
// Errors:
//   - ErrNotStarted / ErrAlreadyStarted — lifecycle misuse.
//   - ErrInvalidProbabilities — state-probability start whose vector does not
//     sum to 1 within core.Delta.
//   - ErrMissingProbability — a listed candidate without an emission entry.
//   - ErrZeroScalingDivisor — c_t == 0; the step is not recorded.

// StartWithInitialStateProbabilities starts the computation with the given
// initial state probabilities, which must sum to 1 within core.Delta.
//
// initialStates supplies the iteration order for every derived result;
// initialProbabilities must contain an entry for each of them.
//
// Errors: ErrAlreadyStarted, ErrMissingProbability, ErrInvalidProbabilities.
func (fb *ForwardBackward[S, O]) StartWithInitialStateProbabilities(
	initialStates []S, initialProbabilities map[S]float64,
) error {
	if fb.steps != nil {
		return ErrAlreadyStarted
	}

	values := make([]float64, 0, len(initialStates))
	for _, state := range initialStates {
		probability, ok := initialProbabilities[state]
		if !ok {
			return ErrMissingProbability
		}
		values = append(values, probability)
	}
	if !core.SumsToOne(values, core.Delta) {
		return ErrInvalidProbabilities
	}

	var zeroObservation O

	return fb.initializeStateProbabilities(zeroObservation, initialStates, initialProbabilities)
}

// StartWithInitialObservation starts the computation at the given first
// observation, treating its emission probabilities as the unnormalized
// forward vector of step 0: the vector is scaled to sum 1 and the
// pre-normalization sum is recorded as the scaling divisor c_0.
//
// Unlike StartWithInitialStateProbabilities, no sum-to-one check applies;
// emission entries may be unnormalized probabilities or densities.
//
// Errors: ErrAlreadyStarted, ErrMissingProbability, ErrZeroScalingDivisor.
func (fb *ForwardBackward[S, O]) StartWithInitialObservation(
	observation O, candidates []S, emissionProbabilities map[S]float64,
) error {
	if fb.steps != nil {
		return ErrAlreadyStarted
	}

	return fb.initializeStateProbabilities(observation, candidates, emissionProbabilities)
}

// NextStep processes the next time step.
//
// candidates supplies the iteration order of the step; emissionProbabilities
// must contain an entry for each candidate. A transition probability of zero
// is assumed for every transition missing from transitionProbabilities.
//
// All inputs are defensively snapshotted: mutating them after the call does
// not affect the engine.
//
// Errors: ErrNotStarted, ErrMissingProbability, ErrZeroScalingDivisor.
// On error the engine state is unchanged.
func (fb *ForwardBackward[S, O]) NextStep(
	observation O, candidates []S,
	emissionProbabilities map[S]float64,
	transitionProbabilities map[core.Transition[S]]float64,
) error {
	if fb.steps == nil {
		return ErrNotStarted
	}

	candidates = append([]S(nil), candidates...)
	emissionProbabilities = snapshotMap(emissionProbabilities)
	transitionProbabilities = snapshotMap(transitionProbabilities)

	// On-the-fly computation of forward probabilities at each step allows
	// efficient (re)computation of smoothing probabilities at any time.
	prevForward := fb.steps[len(fb.steps)-1].forward
	curForward := make(map[S]float64, len(candidates))
	var sum float64
	for _, curState := range candidates {
		emission, ok := emissionProbabilities[curState]
		if !ok {
			return ErrMissingProbability
		}
		forward := emission * fb.forwardSum(curState, prevForward, transitionProbabilities)
		curForward[curState] = forward
		sum += forward
	}
	if sum == 0 {
		return ErrZeroScalingDivisor
	}

	normalizeForward(curForward, sum)
	fb.steps = append(fb.steps, step[S, O]{
		observation:    observation,
		candidates:     candidates,
		emissions:      emissionProbabilities,
		transitions:    transitionProbabilities,
		forward:        curForward,
		scalingDivisor: sum,
	})
	fb.prevCandidates = candidates

	return nil
}

// ForwardProbability returns p(candidate | o_1..o_t) for the zero-based time
// step t. A candidate absent from step t's candidate set has probability 0.
//
// Errors: ErrNotStarted, ErrIndexOutOfRange.
func (fb *ForwardBackward[S, O]) ForwardProbability(t int, candidate S) (float64, error) {
	if fb.steps == nil {
		return 0, ErrNotStarted
	}
	if t < 0 || t >= len(fb.steps) {
		return 0, ErrIndexOutOfRange
	}

	return fb.steps[t].forward[candidate], nil
}

// CurrentForwardProbability returns p(candidate | o_1..o_t) for the latest
// time step.
//
// Errors: ErrNotStarted.
func (fb *ForwardBackward[S, O]) CurrentForwardProbability(candidate S) (float64, error) {
	if fb.steps == nil {
		return 0, ErrNotStarted
	}

	return fb.ForwardProbability(len(fb.steps)-1, candidate)
}

// ObservationLogProbability returns log p(o_1..o_T), the log probability of
// the entire observation sequence, as the sum of the per-step log scaling
// divisors. The log is returned to prevent arithmetic underflow for very
// small probabilities.
//
// Errors: ErrNotStarted.
func (fb *ForwardBackward[S, O]) ObservationLogProbability() (float64, error) {
	if fb.steps == nil {
		return 0, ErrNotStarted
	}

	var result float64
	for i := range fb.steps {
		result += math.Log(fb.steps[i].scalingDivisor)
	}

	return result, nil
}

// Steps returns the number of recorded time steps, including the initial
// one. It is 0 before a start method succeeds.
func (fb *ForwardBackward[S, O]) Steps() int {
	return len(fb.steps)
}

// initializeStateProbabilities records step 0 from the given probability
// vector, normalizing it and keeping the pre-normalization sum as c_0.
func (fb *ForwardBackward[S, O]) initializeStateProbabilities(
	observation O, candidates []S, initialProbabilities map[S]float64,
) error {
	candidates = append([]S(nil), candidates...)

	forward := make(map[S]float64, len(candidates))
	var sum float64
	for _, candidate := range candidates {
		probability, ok := initialProbabilities[candidate]
		if !ok {
			return ErrMissingProbability
		}
		forward[candidate] = probability
		sum += probability
	}
	if sum == 0 {
		return ErrZeroScalingDivisor
	}

	normalizeForward(forward, sum)
	fb.steps = []step[S, O]{{
		observation:    observation,
		candidates:     candidates,
		forward:        forward,
		scalingDivisor: sum,
	}}
	fb.prevCandidates = candidates

	return nil
}

// forwardSum returns the unweighted forward recurrence term of curState:
// the probability mass flowing into it from the previous step.
func (fb *ForwardBackward[S, O]) forwardSum(
	curState S, prevForward map[S]float64,
	transitionProbabilities map[core.Transition[S]]float64,
) float64 {
	var result float64
	for _, prevState := range fb.prevCandidates {
		result += prevForward[prevState] *
			transitionProbability(prevState, curState, transitionProbabilities)
	}

	return result
}

// transitionProbability returns zero probability for missing transitions.
func transitionProbability[S comparable](
	prevState, curState S, transitionProbabilities map[core.Transition[S]]float64,
) float64 {
	return transitionProbabilities[core.Transition[S]{From: prevState, To: curState}]
}

// normalizeForward divides every entry by sum in place.
func normalizeForward[S comparable](forward map[S]float64, sum float64) {
	for state, probability := range forward {
		forward[state] = probability / sum
	}
}

// snapshotMap returns a defensive copy of m; a nil map stays nil.
func snapshotMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	copied := make(map[K]V, len(m))
	for key, value := range m {
		copied[key] = value
	}

	return copied
}

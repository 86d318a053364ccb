package viterbi

import (
	"math"

	"github.com/katalvlaran/lvlhmm/core"
)

// Viterbi — streaming forward pass with back-pointer chains
//
// Description:
//
//	The forward message of step t maps each candidate to the log probability
//	of the single best path ending there given o_1..o_t. Alongside the
//	message, every reachable candidate gets an extendedState node pointing
//	at its best predecessor's node, so the most likely sequence can be read
//	back without storing per-step tables.
//
// Algorithm Outline (per step t ≥ 1):
//  1. For each cur ∈ C_t:
//     best = max_{prev ∈ C_{t-1}} message[prev] + T_t(prev, cur)
//     (a missing T_t entry contributes -Inf; strict > keeps the first
//     maximizing prev in iteration order)
//  2. newMessage[cur] = best + E_t[cur]
//  3. If some prev achieved a maximum above -Inf, chain a node
//     (cur, o_t, D_t(prev, cur)) → node(prev); otherwise cur is unreachable
//     and gets no node.
//  4. If every newMessage value is -Inf the HMM is broken: latch, keep the
//     previous message and nodes so retrieval still works. Otherwise commit.
//
// Complexity:
//
//	Time   = O(n²) per step
//	Memory = O(n) new nodes per step; nodes only reachable through replaced
//	         step maps become garbage

// StartWithInitialStateProbabilities starts the computation with the given
// initial state log probabilities, one per initial state candidate. The
// step-0 nodes carry no observation.
//
// initialStates supplies the iteration order for every derived result;
// initialLogProbabilities must contain an entry for each of them.
//
// If every supplied log probability is -Inf, the engine latches an HMM
// break (observable via IsBroken) and returns nil.
//
// Errors: ErrAlreadyStarted, ErrMissingProbability; with smoothing enabled
// also fwdbwd.ErrInvalidProbabilities when the exponentiated probabilities
// do not sum to 1. On error the engine state is unchanged.
func (v *Viterbi[S, O, D]) StartWithInitialStateProbabilities(
	initialStates []S, initialLogProbabilities map[S]float64,
) error {
	if v.started {
		return ErrAlreadyStarted
	}

	var zeroObservation O

	return v.initializeStateProbabilities(zeroObservation, initialStates, initialLogProbabilities, false)
}

// StartWithInitialObservation starts the computation at the given first
// observation, using its emission log probabilities as the initial state
// log probability of each starting candidate.
//
// If every supplied log probability is -Inf, the engine latches an HMM
// break (observable via IsBroken) and returns nil.
//
// Errors: ErrAlreadyStarted, ErrMissingProbability. On error the engine
// state is unchanged.
func (v *Viterbi[S, O, D]) StartWithInitialObservation(
	observation O, candidates []S, emissionLogProbabilities map[S]float64,
) error {
	if v.started {
		return ErrAlreadyStarted
	}

	return v.initializeStateProbabilities(observation, candidates, emissionLogProbabilities, true)
}

// NextStep processes the next time step.
//
// candidates supplies the iteration order of the step;
// emissionLogProbabilities must contain an entry for each candidate. A log
// probability of -Inf (zero probability) is assumed for every transition
// missing from transitionLogProbabilities.
//
// transitionDescriptors optionally attaches a descriptor to each
// transition; the descriptor of the winning incoming transition of each
// candidate is retained and reported by ComputeMostLikelySequence. Pass nil
// if descriptors are not needed.
//
// The candidate list is copied and the supplied maps are only read during
// the call; mutating any of them afterwards cannot affect the engine.
//
// When the step leaves every candidate at zero probability, the engine
// latches an HMM break and returns nil: the break is an expected mode, not
// an error. Subsequent NextStep calls return ErrBroken;
// ComputeMostLikelySequence returns the sequence up to the pre-break step.
//
// Errors: ErrNotStarted, ErrBroken, ErrMissingProbability; with smoothing
// enabled also fwdbwd errors from the embedded engine. On error the engine
// state is unchanged.
func (v *Viterbi[S, O, D]) NextStep(
	observation O, candidates []S,
	emissionLogProbabilities map[S]float64,
	transitionLogProbabilities map[core.Transition[S]]float64,
	transitionDescriptors map[core.Transition[S]]D,
) error {
	if !v.started {
		return ErrNotStarted
	}
	if v.broken {
		return ErrBroken
	}

	candidates = append([]S(nil), candidates...)

	newMessage, newBackPointers, err := v.forwardStep(
		observation, candidates,
		emissionLogProbabilities, transitionLogProbabilities, transitionDescriptors,
	)
	if err != nil {
		return err
	}

	if hmmBreak(newMessage) {
		// Keep the pre-break message and nodes so that retrieval still
		// yields the best sequence up to the previous step.
		v.broken = true

		return nil
	}

	if v.fb != nil {
		// Feed the embedded smoothing engine only with committed steps so
		// its vectors align one-to-one with the retrievable sequence.
		if err = v.fb.NextStep(
			observation, candidates,
			core.LogToLinear(emissionLogProbabilities),
			core.LogToLinear(transitionLogProbabilities),
		); err != nil {
			return err
		}
	}

	v.message = newMessage
	v.messageCandidates = candidates
	v.lastExtendedStates = newBackPointers
	v.prevCandidates = candidates
	v.appendHistory(newMessage, candidates)

	return nil
}

// ComputeMostLikelySequence returns the most likely sequence of states for
// all time steps. Formally, this is argmax p(s_1..s_T | o_1..o_T) over all
// candidate sequences s_1..s_T.
//
// It is callable in every engine state: before initialization (or after an
// HMM break at initialization) it returns an empty sequence; after a break
// at step t it returns the most likely sequence up to step t-1. Ties are
// resolved towards the candidate listed first in the final step's order.
//
// With WithComputeSmoothingProbabilities, every returned entry carries the
// smoothing posterior of its state; otherwise SmoothingProbability is NaN.
func (v *Viterbi[S, O, D]) ComputeMostLikelySequence() []core.SequenceState[S, O, D] {
	if v.message == nil {
		// No committed steps: never started, or broken at initialization.
		return nil
	}

	sequence := v.retrieveMostLikelySequence(v.mostLikelyState())

	if v.fb != nil {
		if vectors, err := v.fb.ComputeSmoothingProbabilities(); err == nil {
			for i := range sequence {
				sequence[i].SmoothingProbability = vectors[i][sequence[i].State]
			}
		}
	}

	return sequence
}

// IsBroken reports whether an HMM break occurred: a step (or the
// initialization) at which every candidate had zero probability. Once
// latched, the flag is sticky and NextStep is rejected with ErrBroken.
func (v *Viterbi[S, O, D]) IsBroken() bool {
	return v.broken
}

// initializeStateProbabilities validates and commits step 0.
func (v *Viterbi[S, O, D]) initializeStateProbabilities(
	observation O, candidates []S, initialLogProbabilities map[S]float64, hasObservation bool,
) error {
	candidates = append([]S(nil), candidates...)

	// Build the initial message in caller order rather than adopting the
	// supplied map, so iteration never depends on map order.
	initialMessage := make(map[S]float64, len(candidates))
	for _, candidate := range candidates {
		logProbability, ok := initialLogProbabilities[candidate]
		if !ok {
			return ErrMissingProbability
		}
		initialMessage[candidate] = logProbability
	}

	if hmmBreak(initialMessage) {
		v.started = true
		v.broken = true

		return nil
	}

	if v.fb != nil {
		linear := core.LogToLinear(initialLogProbabilities)
		var err error
		if hasObservation {
			err = v.fb.StartWithInitialObservation(observation, candidates, linear)
		} else {
			err = v.fb.StartWithInitialStateProbabilities(candidates, linear)
		}
		if err != nil {
			return err
		}
	}

	v.started = true
	v.message = initialMessage
	v.messageCandidates = candidates
	v.appendHistory(initialMessage, candidates)

	v.lastExtendedStates = make(map[S]*extendedState[S, O, D], len(candidates))
	for _, candidate := range candidates {
		v.lastExtendedStates[candidate] = &extendedState[S, O, D]{
			state:       candidate,
			observation: observation,
		}
	}

	v.prevCandidates = candidates

	return nil
}

// forwardStep computes the new message and the back pointers of one step.
func (v *Viterbi[S, O, D]) forwardStep(
	observation O, candidates []S,
	emissionLogProbabilities map[S]float64,
	transitionLogProbabilities map[core.Transition[S]]float64,
	transitionDescriptors map[core.Transition[S]]D,
) (map[S]float64, map[S]*extendedState[S, O, D], error) {
	newMessage := make(map[S]float64, len(candidates))
	newBackPointers := make(map[S]*extendedState[S, O, D], len(candidates))

	for _, curState := range candidates {
		maxLogProbability := math.Inf(-1)
		var maxPrevState S
		foundPrev := false
		for _, prevState := range v.prevCandidates {
			logProbability := v.message[prevState] +
				transitionLogProbability(prevState, curState, transitionLogProbabilities)
			// Strict > preserves the first maximizing predecessor in the
			// previous step's iteration order.
			if logProbability > maxLogProbability {
				maxLogProbability = logProbability
				maxPrevState = prevState
				foundPrev = true
			}
		}

		emission, ok := emissionLogProbabilities[curState]
		if !ok {
			return nil, nil, ErrMissingProbability
		}
		newMessage[curState] = maxLogProbability + emission

		// Without a finite-probability predecessor, curState has zero path
		// probability and can never appear in the most likely sequence, so
		// no node is chained for it.
		if foundPrev {
			newBackPointers[curState] = &extendedState[S, O, D]{
				state:                curState,
				backPointer:          v.lastExtendedStates[maxPrevState],
				observation:          observation,
				transitionDescriptor: transitionDescriptors[core.Transition[S]{From: maxPrevState, To: curState}],
			}
		}
	}

	return newMessage, newBackPointers, nil
}

// mostLikelyState returns the candidate maximizing the current message;
// strict > keeps the first maximum in candidate order.
func (v *Viterbi[S, O, D]) mostLikelyState() S {
	result := v.messageCandidates[0]
	maxLogProbability := v.message[result]
	for _, candidate := range v.messageCandidates[1:] {
		if v.message[candidate] > maxLogProbability {
			maxLogProbability = v.message[candidate]
			result = candidate
		}
	}

	return result
}

// retrieveMostLikelySequence walks the back-pointer chain ending in
// lastState and returns it in chronological order.
func (v *Viterbi[S, O, D]) retrieveMostLikelySequence(lastState S) []core.SequenceState[S, O, D] {
	var sequence []core.SequenceState[S, O, D]
	for es := v.lastExtendedStates[lastState]; es != nil; es = es.backPointer {
		sequence = append(sequence, core.SequenceState[S, O, D]{
			State:                es.state,
			Observation:          es.observation,
			TransitionDescriptor: es.transitionDescriptor,
			SmoothingProbability: math.NaN(),
		})
	}

	// Reverse in place: the walk collected states from last to first.
	for l, r := 0, len(sequence)-1; l < r; l, r = l+1, r-1 {
		sequence[l], sequence[r] = sequence[r], sequence[l]
	}

	return sequence
}

// hmmBreak reports whether the message is empty or holds only zero
// probabilities, which breaks the HMM.
func hmmBreak[S comparable](message map[S]float64) bool {
	for _, logProbability := range message {
		if !math.IsInf(logProbability, -1) {
			return false
		}
	}

	return true
}

// transitionLogProbability returns -Inf (zero probability) for missing
// transitions.
func transitionLogProbability[S comparable](
	prevState, curState S, transitionLogProbabilities map[core.Transition[S]]float64,
) float64 {
	logProbability, ok := transitionLogProbabilities[core.Transition[S]{From: prevState, To: curState}]
	if !ok {
		return math.Inf(-1)
	}

	return logProbability
}

package fwdbwd

// Backward pass — scaling cancellation
//
// Description:
//
//	Smoothing probabilities p(s_t | o_1..o_T) are the elementwise product of
//	the forward and backward vectors. Because each recorded forward vector
//	was normalized by its scaling divisor, the backward recurrence divides
//	by the *next* step's divisor:
//
//	  β_T[cur] = 1
//	  β_t[cur] = ( Σ_{next ∈ C_{t+1}} E_{t+1}[next] · β_{t+1}[next] · T_{t+1}(cur, next) ) / c_{t+1}
//
//	With that choice, forward_t · β_t is already a normalized posterior and
//	no post-pass renormalization is needed (see the scaled-variant discussion
//	at https://en.wikipedia.org/wiki/Forward-backward_algorithm).
//
// Complexity: O(T·n²) time, O(n) extra memory beyond the recorded steps.

// ComputeSmoothingProbabilities returns, for every recorded time step in
// chronological order, the probability of each of the step's candidates
// given all observations. The initial step is included.
//
// Each returned vector sums to 1 within core.Delta and its values lie in
// [-core.Delta, 1+core.Delta].
//
// The pass runs on demand from the recorded steps; the engine remains
// usable for further NextStep calls afterwards.
//
// Errors: ErrNotStarted.
func (fb *ForwardBackward[S, O]) ComputeSmoothingProbabilities() ([]map[S]float64, error) {
	if fb.steps == nil {
		return nil, ErrNotStarted
	}

	result := make([]map[S]float64, 0, len(fb.steps))

	// Last step: the backward vector is all ones.
	last := len(fb.steps) - 1
	backward := make(map[S]float64, len(fb.steps[last].candidates))
	for _, candidate := range fb.steps[last].candidates {
		backward[candidate] = 1.0
	}
	result = append(result, fb.smoothingVector(last, backward))

	// Remaining steps, walking towards step 0.
	for t := last - 1; t >= 0; t-- {
		nextBackward := backward
		backward = make(map[S]float64, len(fb.steps[t].candidates))
		for _, candidate := range fb.steps[t].candidates {
			backward[candidate] = fb.unscaledBackwardProbability(candidate, nextBackward, t+1) /
				fb.steps[t+1].scalingDivisor
		}
		result = append(result, fb.smoothingVector(t, backward))
	}

	reverseVectors(result)

	return result, nil
}

// smoothingVector multiplies the recorded forward vector of step t with the
// given backward vector, in the step's candidate order.
func (fb *ForwardBackward[S, O]) smoothingVector(t int, backward map[S]float64) map[S]float64 {
	forward := fb.steps[t].forward
	vector := make(map[S]float64, len(fb.steps[t].candidates))
	for _, candidate := range fb.steps[t].candidates {
		vector[candidate] = forward[candidate] * backward[candidate]
	}

	return vector
}

// unscaledBackwardProbability computes the backward recurrence term of
// candidate against the recorded step at index next (= t+1), before the
// division by that step's scaling divisor.
func (fb *ForwardBackward[S, O]) unscaledBackwardProbability(
	candidate S, nextBackward map[S]float64, next int,
) float64 {
	nextStep := &fb.steps[next]
	var result float64
	for _, nextCandidate := range nextStep.candidates {
		result += nextStep.emissions[nextCandidate] *
			nextBackward[nextCandidate] *
			transitionProbability(candidate, nextCandidate, nextStep.transitions)
	}

	return result
}

// reverseVectors reverses the slice in place (vectors are collected from the
// last step towards the first).
func reverseVectors[S comparable](vectors []map[S]float64) {
	for l, r := 0, len(vectors)-1; l < r; l, r = l+1, r-1 {
		vectors[l], vectors[r] = vectors[r], vectors[l]
	}
}

package fwdbwd_test

import (
	"fmt"

	"github.com/katalvlaran/lvlhmm/core"
	"github.com/katalvlaran/lvlhmm/fwdbwd"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleForwardBackward_ComputeSmoothingProbabilities
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	The classic umbrella world from Wikipedia's forward-backward article:
//	hidden weather {Rain, Sun}, observed umbrella usage over five days.
//	The engine is seeded with uniform initial state probabilities, then fed
//	one observation per step; smoothing yields the posterior of each
//	weather state per day given the *entire* week.
//
// Use case:
//
//	Confidence scoring: the same pattern annotates map-matching candidates
//	with posteriors given the whole GPS trace.
//
// Complexity: O(T·n²) time for the forward pass and again for smoothing.
func ExampleForwardBackward_ComputeSmoothingProbabilities() {
	candidates := []string{"Rain", "Sun"}
	transitions := map[core.Transition[string]]float64{
		{From: "Rain", To: "Rain"}: 0.7,
		{From: "Rain", To: "Sun"}:  0.3,
		{From: "Sun", To: "Rain"}:  0.3,
		{From: "Sun", To: "Sun"}:   0.7,
	}
	emissions := map[bool]map[string]float64{
		true:  {"Rain": 0.9, "Sun": 0.2}, // umbrella seen
		false: {"Rain": 0.1, "Sun": 0.8}, // no umbrella
	}

	fb := fwdbwd.New[string, bool]()
	if err := fb.StartWithInitialStateProbabilities(candidates,
		map[string]float64{"Rain": 0.5, "Sun": 0.5}); err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, sawUmbrella := range []bool{true, true, false, true, true} {
		if err := fb.NextStep(sawUmbrella, candidates, emissions[sawUmbrella], transitions); err != nil {
			fmt.Println("error:", err)

			return
		}
	}

	posteriors, err := fb.ComputeSmoothingProbabilities()
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for step, vector := range posteriors {
		fmt.Printf("step %d: Rain=%.4f Sun=%.4f\n", step, vector["Rain"], vector["Sun"])
	}
	logProbability, _ := fb.ObservationLogProbability()
	fmt.Printf("log p(observations) = %.4f\n", logProbability)
	// Output:
	// step 0: Rain=0.6469 Sun=0.3531
	// step 1: Rain=0.8673 Sun=0.1327
	// step 2: Rain=0.8204 Sun=0.1796
	// step 3: Rain=0.3075 Sun=0.6925
	// step 4: Rain=0.8204 Sun=0.1796
	// step 5: Rain=0.8673 Sun=0.1327
	// log p(observations) = -3.3725
}

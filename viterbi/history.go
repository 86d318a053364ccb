package viterbi

import (
	"fmt"
	"strings"
)

// appendHistory records a message snapshot when history keeping is enabled.
func (v *Viterbi[S, O, D]) appendHistory(message map[S]float64, candidates []S) {
	if !v.opts.KeepMessageHistory {
		return
	}

	v.history = append(v.history, message)
	v.historyCandidates = append(v.historyCandidates, candidates)
}

// MessageHistory returns the recorded forward messages, one map per time
// step starting with the initial step. For each state s of step t,
// MessageHistory()[t][s] is the log probability of the most likely path
// ending in s given o_1..o_t — formally max log p(s_1..s_t, o_1..o_t) over
// s_1..s_{t-1}.
//
// It returns nil unless the engine was configured with
// WithKeepMessageHistory. The returned maps are the engine's own records;
// callers must treat them as read-only.
func (v *Viterbi[S, O, D]) MessageHistory() []map[S]float64 {
	return v.history
}

// MessageHistoryString renders the recorded message history, one block per
// time step with candidates in their submitted order. It returns the empty
// string unless the engine was configured with WithKeepMessageHistory.
func (v *Viterbi[S, O, D]) MessageHistoryString() string {
	if v.history == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Message history with log probabilities\n\n")
	for t, message := range v.history {
		fmt.Fprintf(&sb, "Time step %d\n", t)
		for _, state := range v.historyCandidates[t] {
			fmt.Fprintf(&sb, "%v: %v\n", state, message[state])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

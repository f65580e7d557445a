package logits

import "slices"

// NoRepeatNgram bans every token whose selection would reproduce an
// n-gram already present in the history: the last n-1 tokens form the
// current prefix, and any token that ever followed that prefix before is
// forced to -Inf. The ban set is recomputed from the supplied history on
// every call; nothing persists between steps.
type NoRepeatNgram struct {
	n int
}

// NewNoRepeatNgram configures the n-gram size. n <= 0 disables the check.
// With n == 1 the prefix is empty, so every token seen in the history is
// banned.
func NewNoRepeatNgram(n int) *NoRepeatNgram {
	return &NoRepeatNgram{n: n}
}

func (p *NoRepeatNgram) Process(logits []float32, history []int) []float32 {
	if p.n <= 0 || len(history) < p.n {
		return logits
	}

	prefix := history[len(history)-p.n+1:]
	for i := 0; i+p.n <= len(history); i++ {
		if !slices.Equal(history[i:i+p.n-1], prefix) {
			continue
		}
		if banned := history[i+p.n-1]; banned >= 0 && banned < len(logits) {
			logits[banned] = negInf
		}
	}
	return logits
}

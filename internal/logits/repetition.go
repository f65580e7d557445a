package logits

import "fmt"

// RepetitionPenalty rescales the scores of tokens that already occur in
// the history: a positive score is divided by the penalty, anything else
// is multiplied by it. Each unique id is adjusted exactly once no matter
// how many times it repeats in the history. Ids outside [0, len(logits))
// are ignored. A penalty of 1.0 leaves the vector bit-identical.
type RepetitionPenalty struct {
	penalty float32

	seenMark  []uint32
	seenEpoch uint32
}

// NewRepetitionPenalty returns an error for penalties that cannot produce
// a meaningful result (zero, negative, NaN).
func NewRepetitionPenalty(penalty float64) (*RepetitionPenalty, error) {
	if !(penalty > 0) {
		return nil, fmt.Errorf("repetition penalty must be > 0, got %v", penalty)
	}
	return &RepetitionPenalty{penalty: float32(penalty)}, nil
}

func (p *RepetitionPenalty) Process(logits []float32, history []int) []float32 {
	if p.penalty == 1.0 || len(history) == 0 || len(logits) == 0 {
		return logits
	}

	if len(p.seenMark) < len(logits) {
		p.seenMark = make([]uint32, len(logits))
	}
	p.seenEpoch++
	if p.seenEpoch == 0 {
		clear(p.seenMark)
		p.seenEpoch = 1
	}

	for _, id := range history {
		if id < 0 || id >= len(logits) || p.seenMark[id] == p.seenEpoch {
			continue
		}
		p.seenMark[id] = p.seenEpoch
		if logits[id] > 0 {
			logits[id] /= p.penalty
		} else {
			logits[id] *= p.penalty
		}
	}
	return logits
}

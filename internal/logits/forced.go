package logits

import "fmt"

// StepToken pins one generation step to one token id.
type StepToken struct {
	Step int
	ID   int
}

// ForcedTokens masks the vocabulary at configured steps so that any
// downstream picker deterministically selects the forced token: every
// other logit becomes -Inf and the forced one exactly 0. Steps without a
// mapping pass through untouched. The mask overwrites rather than blends,
// so composed last in a chain it dominates every earlier adjustment.
type ForcedTokens struct {
	byStep map[int]int
}

// NewForcedTokens validates the mapping against the session vocabulary
// size. Duplicate steps resolve last-write-wins.
func NewForcedTokens(vocabSize int, forced []StepToken) (*ForcedTokens, error) {
	byStep := make(map[int]int, len(forced))
	for _, ft := range forced {
		if ft.Step < 0 {
			return nil, fmt.Errorf("forced token step must be >= 0, got %d", ft.Step)
		}
		if ft.ID < 0 || ft.ID >= vocabSize {
			return nil, fmt.Errorf("forced token id %d out of vocab range [0, %d)", ft.ID, vocabSize)
		}
		byStep[ft.Step] = ft.ID
	}
	return &ForcedTokens{byStep: byStep}, nil
}

func (f *ForcedTokens) Process(logits []float32, history []int) []float32 {
	id, ok := f.byStep[step(history)]
	if !ok {
		return logits
	}
	for i := range logits {
		logits[i] = negInf
	}
	if id < len(logits) {
		logits[id] = 0
	}
	return logits
}

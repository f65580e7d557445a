// Package toy provides a deterministic stand-in model and codec for
// exercising the generation pipeline without real weights. The same seed
// and context always produce bit-identical logits.
package toy

// Model derives next-token scores by integer hash mixing over the context.
// Scores land in [0,1) except for the end-of-text id, whose score ramps
// with context length so sequences end within a context window on their own.
type Model struct {
	seed int64
}

func NewModel(seed int64) *Model {
	return &Model{seed: seed}
}

func (m *Model) VocabSize() int { return len(words) }

func (m *Model) Forward(tokens []int) ([]float32, error) {
	h := mix(uint64(m.seed))
	for _, id := range tokens {
		h = mix(h ^ uint64(id)*0x9e3779b97f4a7c15)
	}

	logits := make([]float32, len(words))
	for i := range logits {
		u := mix(h ^ uint64(i)*0x9e3779b97f4a7c15)
		logits[i] = float32(u>>40) / float32(1<<24)
	}
	logits[eosID] += float32(len(tokens)) * (1.0 / 64)
	return logits, nil
}

// mix is the splitmix64 finalizer. It is a bijection on uint64, so
// distinct seeds and distinct contexts can never collapse to the same
// score vector.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

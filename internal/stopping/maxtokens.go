package stopping

import "fmt"

// MaxTokens stops once the history holds at least the configured number
// of tokens. The comparison is >=, so callers that append in batches
// still stop after overshooting the bound.
type MaxTokens struct {
	max int
}

func NewMaxTokens(n int) (*MaxTokens, error) {
	if n < 0 {
		return nil, fmt.Errorf("max tokens must be >= 0, got %d", n)
	}
	return &MaxTokens{max: n}, nil
}

func (m *MaxTokens) ShouldStop(history []int, _ string) bool {
	return len(history) >= m.max
}

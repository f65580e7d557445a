package stopping

import (
	"fmt"
	"strings"
)

// Sequences stops when the decoded text contains any of the configured
// markers anywhere. Matching is plain substring search: no regex, no
// case folding, no whitespace normalization.
type Sequences struct {
	seqs []string
}

// NewSequences rejects empty markers: an empty string is contained in any
// text, so it can only be a configuration mistake.
func NewSequences(seqs ...string) (*Sequences, error) {
	for _, s := range seqs {
		if s == "" {
			return nil, fmt.Errorf("stop sequence must not be empty")
		}
	}
	return &Sequences{seqs: append([]string(nil), seqs...)}, nil
}

func (s *Sequences) ShouldStop(_ []int, text string) bool {
	for _, seq := range s.seqs {
		if strings.Contains(text, seq) {
			return true
		}
	}
	return false
}

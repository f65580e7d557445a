package toy

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// words is the built-in vocabulary; the index is the token id.
var words = []string{
	"the", "a", "<|endoftext|>", "of", "and", "to", "in", "is",
	"stream", "token", "model", "state", "signal", "path", "loop", "graph",
	"window", "buffer", "vector", "score", "layer", "chain", "step", "mark",
	"cold", "bright", "quiet", "long", "first", "last", "open", "closed",
	"river", "stone", "light", "shadow", "machine", "garden", "paper", "wire",
	"runs", "holds", "turns", "falls", "grows", "moves", "waits", "ends",
	"over", "under", "through", "between", "before", "after", "against", "within",
	"one", "two", "three", "seven", "zero", "north", "true", "still",
}

const eosID = 2

// EOSID returns the id of the end-of-text marker.
func EOSID() int { return eosID }

// Codec maps whitespace-separated words to token ids. Unknown words hash
// to a stable id so any prompt can be encoded.
type Codec struct{}

func NewCodec() Codec { return Codec{} }

func (Codec) Encode(text string) ([]int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	ids := make([]int, len(fields))
	for i, w := range fields {
		ids[i] = wordID(w)
	}
	return ids, nil
}

func (Codec) Decode(ids []int) (string, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(words) {
			return "", fmt.Errorf("unknown token id %d", id)
		}
		out[i] = words[id]
	}
	return strings.Join(out, " "), nil
}

func wordID(w string) int {
	for i, known := range words {
		if known == w {
			return i
		}
	}
	h := fnv.New32a()
	h.Write([]byte(w))
	return int(h.Sum32() % uint32(len(words)))
}

package logits

import "math"

// negInf masks a banned token. Any finite score beats it in an argmax and
// it contributes zero weight to a softmax.
var negInf = float32(math.Inf(-1))

// Processor adjusts the next-token logit vector given the token ids
// generated so far in the current decoding session. Implementations may
// mutate the passed slice in place or return a fresh one; callers must
// treat the returned slice as the result either way.
//
// A processor instance belongs to one decoding session and is not safe
// for concurrent use.
type Processor interface {
	Process(logits []float32, history []int) []float32
}

// step derives the current generation step from the history: step 0 is
// the call before any token has been generated. Step-scoped processors
// must go through this helper rather than reading len(history) directly.
func step(history []int) int {
	return len(history)
}

// Chain applies processors in insertion order, feeding the output of one
// into the input of the next. An empty chain is the identity. No
// reordering or deduplication happens: later processors see, and may
// override, everything the earlier ones did.
type Chain struct {
	procs []Processor
}

func NewChain(procs ...Processor) *Chain {
	return &Chain{procs: procs}
}

// Add appends p to the end of the chain.
func (c *Chain) Add(p Processor) {
	c.procs = append(c.procs, p)
}

// Len reports the number of processors in the chain.
func (c *Chain) Len() int {
	return len(c.procs)
}

func (c *Chain) Process(logits []float32, history []int) []float32 {
	for _, p := range c.procs {
		logits = p.Process(logits, history)
	}
	return logits
}

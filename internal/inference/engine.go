package inference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samcharles93/steer/internal/logits"
)

type Stats struct {
	PromptTokens    int
	TokensGenerated int
	Duration        time.Duration
	TPS             float64
}

// Generator runs the decode loop for a single resolved request. Processors
// see only the generated tokens; the prompt is model context, not history.
type Generator struct {
	model Model
	codec Codec
	procs *logits.Chain
	stops *stopSet
}

func newGenerator(m Model, c Codec, req *Request) (*Generator, error) {
	procs, err := buildChain(req, m.VocabSize())
	if err != nil {
		return nil, err
	}
	stops, err := buildStops(req)
	if err != nil {
		return nil, err
	}
	return &Generator{model: m, codec: c, procs: procs, stops: stops}, nil
}

// Run executes the decode loop until a stop criterion fires. On context
// cancellation it returns the partial result alongside the context error.
func (g *Generator) Run(ctx context.Context, promptTokens []int, stream StreamFunc) (*Result, error) {
	var (
		stats     Stats
		generated []int
		text      string
	)
	stats.PromptTokens = len(promptTokens)
	start := time.Now()

	finish := func(reason string) *Result {
		stats.Duration = time.Since(start)
		if stats.Duration.Seconds() > 0 {
			stats.TPS = float64(stats.TokensGenerated) / stats.Duration.Seconds()
		}
		return &Result{Text: text, Tokens: generated, FinishReason: reason, Stats: stats}
	}

	// A zero token budget stops before the first forward pass.
	if g.stops.all.ShouldStop(generated, text) {
		return finish(g.stops.reason(generated, text)), nil
	}

	ctxTokens := append([]int(nil), promptTokens...)

	for {
		if err := ctx.Err(); err != nil {
			return finish(FinishCancelled), err
		}

		logitsVec, err := safeForward(g.model, ctxTokens)
		if err != nil {
			return nil, fmt.Errorf("forward at step %d: %w", len(generated), err)
		}
		logitsVec = g.procs.Process(logitsVec, generated)

		next, err := argmax(logitsVec)
		if err != nil {
			return nil, fmt.Errorf("pick at step %d: %w", len(generated), err)
		}

		generated = append(generated, next)
		ctxTokens = append(ctxTokens, next)
		stats.TokensGenerated++

		full, err := safeDecode(g.codec, generated)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if stream != nil && len(full) > len(text) {
			stream(full[len(text):])
		}
		text = full

		if g.stops.all.ShouldStop(generated, text) {
			return finish(g.stops.reason(generated, text)), nil
		}
	}
}

// argmax picks the highest-scoring token, lowest index winning ties.
func argmax(logits []float32) (int, error) {
	if len(logits) == 0 {
		return 0, errors.New("model returned no logits")
	}
	best := 0
	for i := 1; i < len(logits); i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	return best, nil
}

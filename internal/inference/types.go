package inference

import (
	"context"

	"github.com/samcharles93/steer/internal/logits"
)

// StreamFunc receives each decoded text fragment as soon as it is produced.
type StreamFunc func(token string)

// Model produces next-token logits for a token context. Implementations
// must be deterministic for a given context.
type Model interface {
	VocabSize() int
	Forward(tokens []int) ([]float32, error)
}

// Codec converts between text and token ids.
type Codec interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
}

type Engine interface {
	Generate(ctx context.Context, req *Request, stream StreamFunc) (*Result, error)
	Close() error
}

type Request struct {
	Prompt       string
	PromptTokens []int

	MaxTokens int

	RepetitionPenalty float64
	NoRepeatNgram     int
	Forced            []logits.StepToken

	EOSTokens     []int
	StopSequences []string

	EchoPrompt bool
}

// Finish reasons reported in Result.FinishReason.
const (
	FinishEOS        = "eos"
	FinishStopString = "stop_string"
	FinishMaxTokens  = "max_tokens"
	FinishCancelled  = "cancelled"
)

type Result struct {
	Text         string
	Tokens       []int
	FinishReason string
	Stats        Stats
}

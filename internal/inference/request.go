package inference

import "github.com/samcharles93/steer/internal/logits"

// RequestOptions carries caller-supplied generation settings. Nil fields
// mean "not set" and fall back to the engine defaults.
type RequestOptions struct {
	Prompt       *string
	PromptTokens []int

	MaxTokens *int

	RepetitionPenalty *float64
	NoRepeatNgram     *int
	Forced            []logits.StepToken

	EOSTokens     []int
	StopSequences []string

	EchoPrompt *bool
}

// GenDefaults holds engine-level generation defaults, normally assembled
// from serve configuration or from the model's own end-of-text id.
type GenDefaults struct {
	MaxTokens         *int
	RepetitionPenalty *float64
	NoRepeatNgram     *int
	EOSTokens         []int
	StopSequences     []string
}

// ResolveRequest merges caller options over engine defaults over built-in
// fallbacks. Slice fields distinguish nil (inherit the default) from an
// empty non-nil slice (explicitly none).
func ResolveRequest(opts RequestOptions, defaults GenDefaults) Request {
	req := Request{
		MaxTokens:         64,
		RepetitionPenalty: 1.0,
		NoRepeatNgram:     0,
		EchoPrompt:        false,
	}

	if defaults.MaxTokens != nil && *defaults.MaxTokens >= 0 {
		req.MaxTokens = *defaults.MaxTokens
	}
	if defaults.RepetitionPenalty != nil && *defaults.RepetitionPenalty > 0 {
		req.RepetitionPenalty = *defaults.RepetitionPenalty
	}
	if defaults.NoRepeatNgram != nil && *defaults.NoRepeatNgram > 0 {
		req.NoRepeatNgram = *defaults.NoRepeatNgram
	}
	if defaults.EOSTokens != nil {
		req.EOSTokens = append([]int(nil), defaults.EOSTokens...)
	}
	if defaults.StopSequences != nil {
		req.StopSequences = append([]string(nil), defaults.StopSequences...)
	}

	if opts.Prompt != nil {
		req.Prompt = *opts.Prompt
	}
	if len(opts.PromptTokens) > 0 {
		req.PromptTokens = append([]int(nil), opts.PromptTokens...)
	}
	if opts.MaxTokens != nil {
		req.MaxTokens = *opts.MaxTokens
	}
	if opts.RepetitionPenalty != nil {
		req.RepetitionPenalty = *opts.RepetitionPenalty
	}
	if opts.NoRepeatNgram != nil {
		req.NoRepeatNgram = *opts.NoRepeatNgram
	}
	if len(opts.Forced) > 0 {
		req.Forced = append([]logits.StepToken(nil), opts.Forced...)
	}
	if opts.EOSTokens != nil {
		req.EOSTokens = append([]int(nil), opts.EOSTokens...)
	}
	if opts.StopSequences != nil {
		req.StopSequences = append([]string(nil), opts.StopSequences...)
	}
	if opts.EchoPrompt != nil {
		req.EchoPrompt = *opts.EchoPrompt
	}

	return req
}

package inference

import (
	"context"
	"errors"
	"fmt"
)

// LocalEngine serves generation requests against an in-process model.
type LocalEngine struct {
	model Model
	codec Codec
}

func NewLocalEngine(m Model, c Codec) *LocalEngine {
	return &LocalEngine{model: m, codec: c}
}

func (e *LocalEngine) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	if closer, ok := e.model.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if closer, ok := e.codec.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Generate resolves the prompt, assembles the per-request pipeline, and
// runs the decode loop. Echoing the prompt only affects the stream; the
// returned text is always generation only.
func (e *LocalEngine) Generate(ctx context.Context, req *Request, stream StreamFunc) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	promptTokens := req.PromptTokens
	if len(promptTokens) == 0 && req.Prompt != "" {
		ids, err := safeEncode(e.codec, req.Prompt)
		if err != nil {
			return nil, fmt.Errorf("encode prompt: %w", err)
		}
		promptTokens = ids
	}

	gen, err := newGenerator(e.model, e.codec, req)
	if err != nil {
		return nil, err
	}

	if req.EchoPrompt && stream != nil && req.Prompt != "" {
		stream(req.Prompt)
	}

	return gen.Run(ctx, promptTokens, stream)
}

func safeForward(m Model, tokens []int) (vec []float32, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Forward: %v", rec)
		}
	}()
	return m.Forward(tokens)
}

func safeEncode(c Codec, text string) (ids []int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Encode: %v", rec)
		}
	}()
	return c.Encode(text)
}

func safeDecode(c Codec, ids []int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Decode: %v", rec)
		}
	}()
	return c.Decode(ids)
}

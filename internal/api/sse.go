package api

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/steer/internal/inference"
)

func (s *Server) streamGeneration(c *echo.Context, opts inference.RequestOptions, id string, created int64, model string, seed int64) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")

	flusher, ok := res.(interface{ Flush() })
	if !ok {
		return writeBadRequest(c, "streaming unsupported")
	}

	// Opening event so clients see the id before the first token lands.
	if err := sendSSEChunk(res, GenerationChunk{
		ID:      id,
		Object:  "generation.chunk",
		Created: created,
		Model:   model,
	}); err != nil {
		return err
	}
	flusher.Flush()

	var resp GenerationResponse
	err := s.provider.WithEngine(c.Request().Context(), seed, func(engine inference.Engine, defaults inference.GenDefaults) error {
		inferReq := inference.ResolveRequest(opts, defaults)
		result, genErr := engine.Generate(c.Request().Context(), &inferReq, func(tok string) {
			_ = sendSSEChunk(res, GenerationChunk{
				ID:      id,
				Object:  "generation.chunk",
				Created: created,
				Model:   model,
				Delta:   tok,
			})
			flusher.Flush()
		})
		if result == nil {
			return genErr
		}
		resp = buildGenerationResponse(id, created, model, result)
		return nil
	})

	if err != nil {
		// Best effort error event before closing the stream.
		_ = sendSSEChunk(res, map[string]any{"error": err.Error()})
		_, _ = fmt.Fprint(res, "data: [DONE]\n\n")
		flusher.Flush()
		return nil
	}

	finish := resp.FinishReason
	_ = sendSSEChunk(res, GenerationChunk{
		ID:           id,
		Object:       "generation.chunk",
		Created:      created,
		Model:        model,
		FinishReason: &finish,
		Usage:        &resp.Usage,
	})
	_, _ = fmt.Fprint(res, "data: [DONE]\n\n")
	flusher.Flush()

	s.store.Put(resp)
	return nil
}

func sendSSEChunk(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", string(b))
	return err
}

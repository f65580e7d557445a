package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestCreateGenerationStreaming(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/generations", `{"prompt":"hello","stream":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	if !strings.Contains(body, "data: ") {
		t.Fatal("expected SSE data events in streaming response")
	}
	if !strings.Contains(body, "generation.chunk") {
		t.Fatal("expected generation.chunk objects in streaming response")
	}
	if !strings.Contains(body, `"delta":"ok"`) {
		t.Fatalf("expected streamed delta, body=%s", body)
	}
	if !strings.Contains(body, `"finish_reason":"max_tokens"`) {
		t.Fatalf("expected finish reason chunk, body=%s", body)
	}
	if !strings.Contains(body, "data: [DONE]") {
		t.Fatal("expected [DONE] sentinel in streaming response")
	}
}

func TestStreamedGenerationIsStored(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/generations", `{"prompt":"hello","stream":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	// Recover the id from the opening chunk.
	var first GenerationChunk
	line, _, _ := strings.Cut(rec.Body.String(), "\n")
	if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &first); err != nil {
		t.Fatalf("decode first chunk: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected id in opening chunk")
	}

	getRec := doJSON(t, e, http.MethodGet, "/v1/generations/"+first.ID, "")
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status: got %d body=%s", getRec.Code, getRec.Body.String())
	}
	if !strings.Contains(getRec.Body.String(), `"text":"ok"`) {
		t.Fatalf("stored generation missing text: %s", getRec.Body.String())
	}
}

func TestCreateGenerationAgainstToyModel(t *testing.T) {
	t.Parallel()

	e := newToyEcho()
	body := `{"prompt":"the","seed":7,"max_tokens":5}`

	first := doJSON(t, e, http.MethodPost, "/v1/generations", body)
	if first.Code != http.StatusOK {
		t.Fatalf("first status: got %d body=%s", first.Code, first.Body.String())
	}
	second := doJSON(t, e, http.MethodPost, "/v1/generations", body)
	if second.Code != http.StatusOK {
		t.Fatalf("second status: got %d body=%s", second.Code, second.Body.String())
	}

	var a, b GenerationResponse
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode second: %v", err)
	}

	if a.Text != b.Text || a.FinishReason != b.FinishReason {
		t.Fatalf("same seed produced different generations: %q/%q vs %q/%q",
			a.Text, a.FinishReason, b.Text, b.FinishReason)
	}
	if a.Usage.PromptTokens != 1 {
		t.Fatalf("prompt tokens: got %d, want 1", a.Usage.PromptTokens)
	}
	if a.Usage.CompletionTokens != len(a.Tokens) {
		t.Fatalf("completion tokens %d does not match %d tokens", a.Usage.CompletionTokens, len(a.Tokens))
	}
	if a.Usage.CompletionTokens == 0 || a.Usage.CompletionTokens > 5 {
		t.Fatalf("completion tokens out of range: %d", a.Usage.CompletionTokens)
	}
}

func TestCreateGenerationStopAsString(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/generations", `{"prompt":"x","stop":"###"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestListModels(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodGet, "/v1/models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["object"] != "list" {
		t.Fatalf("expected object 'list', got %q", resp["object"])
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) == 0 {
		t.Fatal("expected non-empty data array")
	}
}

func TestNormalizeStopSequences(t *testing.T) {
	t.Parallel()

	got, err := normalizeStopSequences(nil)
	if err != nil || got != nil {
		t.Fatalf("nil stop: got %v, %v", got, err)
	}

	got, err = normalizeStopSequences("###")
	if err != nil || len(got) != 1 || got[0] != "###" {
		t.Fatalf("string stop: got %v, %v", got, err)
	}

	got, err = normalizeStopSequences([]any{"a", "b"})
	if err != nil || len(got) != 2 {
		t.Fatalf("array stop: got %v, %v", got, err)
	}

	if _, err = normalizeStopSequences([]any{1}); err == nil {
		t.Fatal("expected error for non-string element")
	}
	if _, err = normalizeStopSequences(42); err == nil {
		t.Fatal("expected error for numeric stop")
	}
}

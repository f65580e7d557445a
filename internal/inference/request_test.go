package inference

import (
	"reflect"
	"testing"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestResolveRequestFallbacks(t *testing.T) {
	req := ResolveRequest(RequestOptions{}, GenDefaults{})

	if req.MaxTokens != 64 {
		t.Fatalf("max tokens: got %d, want 64", req.MaxTokens)
	}
	if req.RepetitionPenalty != 1.0 {
		t.Fatalf("repetition penalty: got %v, want 1.0", req.RepetitionPenalty)
	}
	if req.NoRepeatNgram != 0 {
		t.Fatalf("no-repeat ngram: got %d, want 0", req.NoRepeatNgram)
	}
	if req.EOSTokens != nil || req.StopSequences != nil {
		t.Fatalf("expected no stop config, got eos %v sequences %v", req.EOSTokens, req.StopSequences)
	}
}

func TestResolveRequestDefaultsApply(t *testing.T) {
	defaults := GenDefaults{
		MaxTokens:         intPtr(128),
		RepetitionPenalty: floatPtr(1.3),
		NoRepeatNgram:     intPtr(3),
		EOSTokens:         []int{2},
		StopSequences:     []string{"###"},
	}

	req := ResolveRequest(RequestOptions{}, defaults)

	if req.MaxTokens != 128 {
		t.Fatalf("max tokens: got %d, want 128", req.MaxTokens)
	}
	if req.RepetitionPenalty != 1.3 {
		t.Fatalf("repetition penalty: got %v, want 1.3", req.RepetitionPenalty)
	}
	if req.NoRepeatNgram != 3 {
		t.Fatalf("no-repeat ngram: got %d, want 3", req.NoRepeatNgram)
	}
	if want := []int{2}; !reflect.DeepEqual(req.EOSTokens, want) {
		t.Fatalf("eos tokens: got %v, want %v", req.EOSTokens, want)
	}
	if want := []string{"###"}; !reflect.DeepEqual(req.StopSequences, want) {
		t.Fatalf("stop sequences: got %v, want %v", req.StopSequences, want)
	}
}

func TestResolveRequestOptionsWin(t *testing.T) {
	defaults := GenDefaults{
		MaxTokens:     intPtr(128),
		EOSTokens:     []int{2},
		StopSequences: []string{"###"},
	}
	opts := RequestOptions{
		Prompt:        strPtr("hello"),
		MaxTokens:     intPtr(8),
		EOSTokens:     []int{5, 6},
		StopSequences: []string{},
		EchoPrompt:    boolPtr(true),
	}

	req := ResolveRequest(opts, defaults)

	if req.Prompt != "hello" {
		t.Fatalf("prompt: got %q, want %q", req.Prompt, "hello")
	}
	if req.MaxTokens != 8 {
		t.Fatalf("max tokens: got %d, want 8", req.MaxTokens)
	}
	if want := []int{5, 6}; !reflect.DeepEqual(req.EOSTokens, want) {
		t.Fatalf("eos tokens: got %v, want %v", req.EOSTokens, want)
	}
	// An empty non-nil slice clears the default rather than inheriting it.
	if len(req.StopSequences) != 0 {
		t.Fatalf("stop sequences: got %v, want none", req.StopSequences)
	}
	if !req.EchoPrompt {
		t.Fatalf("echo prompt: got false, want true")
	}
}

func TestResolveRequestIgnoresInvalidDefaults(t *testing.T) {
	defaults := GenDefaults{
		MaxTokens:         intPtr(-5),
		RepetitionPenalty: floatPtr(0),
		NoRepeatNgram:     intPtr(-1),
	}

	req := ResolveRequest(RequestOptions{}, defaults)

	if req.MaxTokens != 64 {
		t.Fatalf("max tokens: got %d, want 64", req.MaxTokens)
	}
	if req.RepetitionPenalty != 1.0 {
		t.Fatalf("repetition penalty: got %v, want 1.0", req.RepetitionPenalty)
	}
	if req.NoRepeatNgram != 0 {
		t.Fatalf("no-repeat ngram: got %d, want 0", req.NoRepeatNgram)
	}
}

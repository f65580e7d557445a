package toy

import (
	"reflect"
	"testing"
)

func TestForwardIsDeterministic(t *testing.T) {
	ctx := []int{3, 1, 4, 1, 5}

	a, err := NewModel(7).Forward(ctx)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	b, err := NewModel(7).Forward(ctx)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed and context produced different logits")
	}
	if len(a) != NewModel(7).VocabSize() {
		t.Fatalf("logits length: got %d, want %d", len(a), NewModel(7).VocabSize())
	}
}

func TestForwardDependsOnSeedAndContext(t *testing.T) {
	base, _ := NewModel(1).Forward([]int{0})

	otherSeed, _ := NewModel(2).Forward([]int{0})
	if reflect.DeepEqual(base, otherSeed) {
		t.Fatalf("different seeds produced identical logits")
	}

	otherCtx, _ := NewModel(1).Forward([]int{1})
	if reflect.DeepEqual(base, otherCtx) {
		t.Fatalf("different contexts produced identical logits")
	}
}

func TestForwardScoreBounds(t *testing.T) {
	ctx := []int{9, 8, 7}
	logits, err := NewModel(42).Forward(ctx)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	ramp := float32(len(ctx)) * (1.0 / 64)
	for i, v := range logits {
		limit := float32(1)
		if i == eosID {
			limit += ramp
		}
		if v < 0 || v >= limit {
			t.Fatalf("score %d out of range: got %v, limit %v", i, v, limit)
		}
	}
}

func TestForwardEndsSequencesWithinWindow(t *testing.T) {
	ctx := make([]int, 64)
	logits, err := NewModel(3).Forward(ctx)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	best := 0
	for i := 1; i < len(logits); i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	if best != eosID {
		t.Fatalf("expected end-of-text to dominate at window length, got id %d", best)
	}
}

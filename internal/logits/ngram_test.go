package logits

import (
	"math"
	"reflect"
	"testing"
)

func TestNoRepeatNgramProcess(t *testing.T) {
	inf := float32(math.Inf(-1))

	cases := []struct {
		name    string
		n       int
		logits  []float32
		history []int
		want    []float32
	}{
		{
			name:    "bans historic continuation",
			n:       2,
			logits:  []float32{1, 1, 1, 1, 1},
			history: []int{1, 2, 3, 1},
			want:    []float32{1, 1, inf, 1, 1},
		},
		{
			name:    "bans every continuation of a repeated prefix",
			n:       2,
			logits:  []float32{1, 1, 1, 1, 1},
			history: []int{1, 2, 1, 3, 1},
			want:    []float32{1, 1, inf, inf, 1},
		},
		{
			name:    "trigram context",
			n:       3,
			logits:  []float32{1, 1, 1, 1, 1},
			history: []int{0, 1, 2, 0, 1},
			want:    []float32{1, 1, inf, 1, 1},
		},
		{
			name:    "n zero disables the check",
			n:       0,
			logits:  []float32{1, 2, 3},
			history: []int{0, 1, 2, 0},
			want:    []float32{1, 2, 3},
		},
		{
			name:    "negative n disables the check",
			n:       -3,
			logits:  []float32{1, 2, 3},
			history: []int{0, 1, 2, 0},
			want:    []float32{1, 2, 3},
		},
		{
			name:    "empty history is a no-op",
			n:       2,
			logits:  []float32{1, 2, 3},
			history: nil,
			want:    []float32{1, 2, 3},
		},
		{
			name:    "history shorter than n is a no-op",
			n:       3,
			logits:  []float32{1, 2, 3},
			history: []int{0, 1},
			want:    []float32{1, 2, 3},
		},
		{
			name:    "n one bans every seen token",
			n:       1,
			logits:  []float32{1, 1, 1},
			history: []int{0, 2},
			want:    []float32{inf, 1, inf},
		},
		{
			name:    "banned id outside vocab ignored",
			n:       2,
			logits:  []float32{1, 1, 1},
			history: []int{1, 9, 1},
			want:    []float32{1, 1, 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewNoRepeatNgram(tc.n).Process(tc.logits, tc.history)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

package stopping

import "testing"

func TestCriteriaORSemantics(t *testing.T) {
	maxTen, err := NewMaxTokens(10)
	if err != nil {
		t.Fatalf("NewMaxTokens: %v", err)
	}

	cases := []struct {
		name    string
		crit    []Criterion
		history []int
		text    string
		want    bool
	}{
		{
			name:    "eos fires while max tokens does not",
			crit:    []Criterion{maxTen, NewEOS(2)},
			history: []int{1, 2},
			text:    "ab",
			want:    true,
		},
		{
			name:    "none fire",
			crit:    []Criterion{maxTen, NewEOS(2)},
			history: []int{1, 3},
			text:    "ab",
			want:    false,
		},
		{
			name:    "empty list never stops",
			crit:    nil,
			history: []int{1, 2, 3},
			text:    "abc",
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewCriteria(tc.crit...).ShouldStop(tc.history, tc.text); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCriteriaAddAndLen(t *testing.T) {
	c := NewCriteria()
	if c.Len() != 0 {
		t.Fatalf("empty criteria length: got %d, want 0", c.Len())
	}

	maxTwo, err := NewMaxTokens(2)
	if err != nil {
		t.Fatalf("NewMaxTokens: %v", err)
	}
	c.Add(maxTwo)
	c.Add(NewEOS(7))

	if c.Len() != 2 {
		t.Fatalf("criteria length: got %d, want 2", c.Len())
	}
	if !c.ShouldStop([]int{1, 2}, "") {
		t.Fatalf("max tokens member should stop at bound")
	}
}

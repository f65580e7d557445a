package main

import (
	"reflect"
	"testing"

	"github.com/samcharles93/steer/internal/logits"
)

func TestParseTokenList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"empty", "", []int{}, false},
		{"single", "7", []int{7}, false},
		{"many", "1,2,3", []int{1, 2, 3}, false},
		{"spaces", " 4 , 5 ", []int{4, 5}, false},
		{"skips empty elements", "1,,2", []int{1, 2}, false},
		{"negative", "-3", []int{-3}, false},
		{"not a number", "1,x", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseTokenList(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseTokenList(%q): expected error, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTokenList(%q): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseTokenList(%q): got %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseTokenListEmptyIsNotNil(t *testing.T) {
	t.Parallel()
	got, err := parseTokenList("")
	if err != nil {
		t.Fatalf("parseTokenList: %v", err)
	}
	if got == nil {
		t.Fatal("empty input should yield an empty slice, not nil")
	}
}

func TestParseStopList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "END", []string{"END"}},
		{"many", "a,b", []string{"a", "b"}},
		{"keeps inner whitespace", "a, b", []string{"a", " b"}},
		{"skips empty elements", ",a,", []string{"a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := parseStopList(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseStopList(%q): got %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseForcedTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []logits.StepToken
		wantErr bool
	}{
		{"empty", "", []logits.StepToken{}, false},
		{"single", "0:5", []logits.StepToken{{Step: 0, ID: 5}}, false},
		{"many", "0:5,2:7", []logits.StepToken{{Step: 0, ID: 5}, {Step: 2, ID: 7}}, false},
		{"spaces", " 0 : 5 , 2:7", []logits.StepToken{{Step: 0, ID: 5}, {Step: 2, ID: 7}}, false},
		{"missing separator", "5", nil, true},
		{"bad step", "a:5", nil, true},
		{"bad id", "0:b", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseForcedTokens(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseForcedTokens(%q): expected error, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseForcedTokens(%q): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseForcedTokens(%q): got %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestJoinInts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input []int
		want  string
	}{
		{nil, "[]"},
		{[]int{1}, "[1]"},
		{[]int{1, 2, 3}, "[1, 2, 3]"},
	}

	for _, tc := range tests {
		if got := joinInts(tc.input); got != tc.want {
			t.Errorf("joinInts(%v): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

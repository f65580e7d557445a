package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samcharles93/steer/internal/logits"
)

// parseTokenList parses a comma-separated list of token ids. Empty input
// yields an empty, non-nil slice so callers can express "explicitly none".
func parseTokenList(s string) ([]int, error) {
	ids := make([]int, 0, 4)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseStopList splits comma-separated stop strings. Elements are not
// trimmed since leading whitespace can be part of the marker.
func parseStopList(s string) []string {
	stops := make([]string, 0, 2)
	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		stops = append(stops, part)
	}
	return stops
}

// parseForcedTokens parses comma-separated step:id pairs, e.g. "0:5,2:7".
func parseForcedTokens(s string) ([]logits.StepToken, error) {
	forced := make([]logits.StepToken, 0, 2)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		stepPart, idPart, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid forced token %q (want step:id)", part)
		}
		step, err := strconv.Atoi(strings.TrimSpace(stepPart))
		if err != nil {
			return nil, fmt.Errorf("invalid forced token step %q", stepPart)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil {
			return nil, fmt.Errorf("invalid forced token id %q", idPart)
		}
		forced = append(forced, logits.StepToken{Step: step, ID: id})
	}
	return forced, nil
}

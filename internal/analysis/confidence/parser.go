package confidence

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Scores extracts the classifier's confidence percentages from a model reply.
// The prompt demands a bare JSON array, but replies occasionally arrive
// wrapped in code fences or with stray prose, so the first array found is
// parsed. Values are clamped to the 0-100 range.
func Scores(reply string) ([]int, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var raw []float64
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}

	out := make([]int, len(raw))
	for i, v := range raw {
		switch {
		case v < 0:
			out[i] = 0
		case v > 100:
			out[i] = 100
		default:
			out[i] = int(math.Round(v))
		}
	}
	return out, nil
}

package chessboard

import (
	"sort"
	"strconv"
	"strings"
)

// ParseFloors expands floor-range text like "2,3,5-8" into the sorted
// list of distinct floor numbers. Ranges expand ascending regardless
// of written order ("8-5" means 5..8). Tokens that do not parse are
// skipped. Empty input yields an empty result.
func ParseFloors(text string) []int {
	seen := make(map[int]struct{})
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if lo, hi, ok := parseRange(token); ok {
			for f := lo; f <= hi; f++ {
				seen[f] = struct{}{}
			}
			continue
		}
		if f, err := strconv.Atoi(token); err == nil {
			seen[f] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

func parseRange(token string) (lo, hi int, ok bool) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

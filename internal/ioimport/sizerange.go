package ioimport

import (
	"strconv"
	"strings"
)

// parseSizeRange parses free-text size ranges into numeric bounds.
// "1.3-2" yields (1.3, 2), a single value "5" yields (5, 5). Compound
// forms like "3x5-8x12" cannot be reduced to one range and yield
// (nil, nil); the verbatim text stays on the size class either way.
func parseSizeRange(s string) (*float64, *float64) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if before, after, found := strings.Cut(s, "-"); found {
		min, err1 := strconv.ParseFloat(strings.TrimSpace(before), 64)
		max, err2 := strconv.ParseFloat(strings.TrimSpace(after), 64)
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		return &min, &max
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, nil
	}
	return &v, &v
}

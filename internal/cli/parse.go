package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"StockToolkit/internal/collector"
)

const dateLayout = "2006-01-02"

// ParseTickers splits comma or space separated symbols from all args.
func ParseTickers(args []string) []string {
	var raw []string
	for _, a := range args {
		raw = append(raw, strings.FieldsFunc(a, func(r rune) bool {
			return r == ',' || r == ' '
		})...)
	}
	return collector.NormalizeTickers(raw)
}

// ParseWindows parses a comma separated list of positive integers such as "50,200".
func ParseWindows(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid window %q: %w", part, err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("window must be positive, got %d", w)
		}
		out = append(out, w)
	}
	return out, nil
}

// ParseDate parses YYYY-MM-DD. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A period token identifies one calendar month as "YYYY-M" with an
// unpadded month, e.g. "2024-5". Tokens are compared by equality
// only; an envelope is stale when its lastReset differs from the
// current token.

// FromTime returns the period token for t.
func FromTime(t time.Time) string {
	return Format(t.Year(), int(t.Month()))
}

// Format returns the period token for a year and month (1-12).
func Format(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}

// Parse splits a period token into year and month.
func Parse(token string) (year, month int, err error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid period format: %q", token)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in period %q: %w", token, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in period %q: %w", token, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in period %q", token)
	}

	return year, month, nil
}

// Valid reports whether token is a well-formed period.
func Valid(token string) bool {
	_, _, err := Parse(token)
	return err == nil
}

package domain

import (
	"fmt"
	"strconv"
	"time"
)

// YearRange converts a 4-digit year string into the inclusive first and last
// day of that calendar year.
func YearRange(yearStr string) (time.Time, time.Time, error) {
	if len(yearStr) != 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year: %q", yearStr)
	}
	// Atoi alone would admit signed strings like "-123" or "+123".
	for _, r := range yearStr {
		if r < '0' || r > '9' {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid year: %q", yearStr)
		}
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year: %q", yearStr)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

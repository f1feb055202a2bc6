package elapsed

import (
	"strconv"
	"time"
)

// DefaultPrecision is the number of fractional digits used by Format
const DefaultPrecision = 2

type unit struct {
	size   time.Duration
	suffix string
}

// Largest first. μ is U+03BC GREEK SMALL LETTER MU.
var units = []unit{
	{time.Second, "s"},
	{time.Millisecond, "ms"},
	{time.Microsecond, "μs"},
	{time.Nanosecond, "ns"},
}

// Format renders d in the largest unit in which its magnitude is at least 1,
// e.g. 227810ns becomes "227.81 μs" and 1.5s becomes "1.50 s".
func Format(d time.Duration) string {
	return FormatPrecision(d, DefaultPrecision)
}

// FormatPrecision is Format with a caller-chosen number of fractional digits.
// Rounding is done by strconv on the exact binary value, so exact ties go to
// the even digit.
func FormatPrecision(d time.Duration, digits int) string {
	if digits < 0 {
		digits = 0
	}

	// uint64 so that math.MinInt64 has a magnitude too
	magnitude := uint64(d)
	if d < 0 {
		magnitude = uint64(-(d + 1)) + 1
	}

	u := units[len(units)-1]
	for _, candidate := range units {
		if magnitude >= uint64(candidate.size) {
			u = candidate
			break
		}
	}

	value := float64(d) / float64(u.size)
	return strconv.FormatFloat(value, 'f', digits, 64) + " " + u.suffix
}

package slots

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrMalformedLabel reports a time label that does not match "H:MM AM|PM".
// Callers rendering a grid absorb it and treat the value as zero rather than
// failing the whole day.
var ErrMalformedLabel = errors.New("malformed time label")

var labelPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (AM|PM)$`)

// DecodeLabel parses a 12-hour clock label such as "9:30 AM" into a
// continuous hour value (9.5). 12 AM maps to 0 and 12 PM to 12.
func DecodeLabel(label string) (float64, error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
	}

	if hour == 12 {
		hour = 0
	}
	if m[3] == "PM" {
		hour += 12
	}
	return float64(hour) + float64(minute)/60, nil
}

// EncodeLabel renders an hour value in [0, 24) back into a display label.
// Only half-hour-aligned values are guaranteed to round-trip.
func EncodeLabel(hourValue float64) string {
	whole := int(math.Floor(hourValue))
	hour := whole % 12
	if hour == 0 {
		hour = 12
	}
	minute := 0
	if hourValue != math.Floor(hourValue) {
		minute = 30
	}
	suffix := "AM"
	if whole >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

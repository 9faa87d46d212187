package reports

import (
	"strings"
	"time"
)

// ResolveSelectedDate parses a YYYY-MM-DD (or RFC 3339) date in loc. A missing or
// unparseable value falls back to today; the bool reports whether that happened.
func ResolveSelectedDate(raw string, now time.Time, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}

	raw = strings.TrimSpace(raw)
	if raw != "" {
		if d, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
			return d, false
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			y, m, d := t.In(loc).Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), false
		}
	}

	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true
}

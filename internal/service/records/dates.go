package records

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	"2006/01/02",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 02 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// NormalizeDate renders a date as YYYY-MM-DD. It accepts ISO timestamps,
// DD/MM/YYYY, plain YYYY-MM-DD and a handful of common layouts; anything else
// becomes an empty string.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		if t, err := time.Parse(dateLayout, s[:10]); err == nil {
			return t.Format(dateLayout)
		}
	}

	if isDayFirst(s) {
		if t, err := time.Parse("2/1/2006", s); err == nil {
			return t.Format(dateLayout)
		}
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout)
	}

	// JavaScript Date strings carry a trailing zone name, e.g. "(Greenwich Mean Time)".
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i]
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return ""
}

func isDayFirst(s string) bool {
	parts := strings.Split(s, "/")
	return len(parts) == 3 && len(parts[0]) <= 2 && len(parts[2]) == 4
}

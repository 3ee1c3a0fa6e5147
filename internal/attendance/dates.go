package attendance

import (
	"strconv"
	"strings"
	"time"
)

var epoch = time.Unix(0, 0).UTC()

// accepted event_date layouts, tried in order. Zone-less forms are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseEventDate parses an event date on a best-effort basis. A bare integer
// is read as Unix milliseconds. When nothing matches it returns the Unix
// epoch and false.
func ParseEventDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return epoch, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return epoch, false
}

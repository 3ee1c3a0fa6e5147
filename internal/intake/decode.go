package intake

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"teamhours-backend/internal/attendance"
	"teamhours-backend/internal/csvtable"
)

// Column names in the activity exports.
const (
	ColID        = "id"
	ColEventName = "event_name"
	ColEventDate = "event_date"
	ColEventID   = "event_id"
	ColUserID    = "user_id"
	ColMinutes   = "minutes"
	ColUserName  = "user_name"
)

// numeric matches the values a spreadsheet export would treat as numbers.
var numeric = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

const maxSafeInt = 1<<53 - 1

func parseNumber(s string) (float64, bool) {
	if !numeric.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f <= -maxSafeInt || f >= maxSafeInt {
		return 0, false
	}
	return f, true
}

// NormalizeID canonicalises numeric-looking identifiers ("01" and "1.0" both
// become "1") so ids from different exports join. Other values are only
// trimmed.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	f, ok := parseNumber(s)
	if !ok {
		return s
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseMinutes returns the numeric value of a minutes cell, or 0 when the
// cell is empty or not a finite number.
func ParseMinutes(s string) float64 {
	f, ok := parseNumber(s)
	if !ok {
		return 0
	}
	return f
}

func field(r csvtable.Record, col string) string {
	v, _ := r.Get(col)
	return strings.TrimSpace(v)
}

func DecodeEvents(t *csvtable.Table) []attendance.EventRow {
	if t == nil {
		return nil
	}
	out := make([]attendance.EventRow, 0, len(t.Records))
	for _, r := range t.Records {
		ev := attendance.EventRow{
			ID:        NormalizeID(field(r, ColID)),
			EventName: field(r, ColEventName),
			EventDate: field(r, ColEventDate),
		}
		for k, v := range r.Fields {
			if k == ColID || k == ColEventName || k == ColEventDate {
				continue
			}
			if ev.Extra == nil {
				ev.Extra = make(map[string]string)
			}
			ev.Extra[k] = strings.TrimSpace(v)
		}
		out = append(out, ev)
	}
	return out
}

func DecodeSessions(t *csvtable.Table) []attendance.SessionRow {
	if t == nil {
		return nil
	}
	out := make([]attendance.SessionRow, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, attendance.SessionRow{
			EventID: NormalizeID(field(r, ColEventID)),
			UserID:  NormalizeID(field(r, ColUserID)),
			Minutes: ParseMinutes(field(r, ColMinutes)),
		})
	}
	return out
}

func DecodeUsers(t *csvtable.Table) []attendance.UserLookupRow {
	if t == nil {
		return nil
	}
	out := make([]attendance.UserLookupRow, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, attendance.UserLookupRow{
			UserID:   NormalizeID(field(r, ColUserID)),
			UserName: field(r, ColUserName),
		})
	}
	return out
}

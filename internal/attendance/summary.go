package attendance

import "slices"

// UserTotal is one member's attendance across every event in a report.
type UserTotal struct {
	UserID   string  `json:"userId" yaml:"userId"`
	UserName string  `json:"userName" yaml:"userName"`
	Minutes  float64 `json:"minutes" yaml:"minutes"`
	Hours    string  `json:"hours" yaml:"hours"`
	Events   int     `json:"events" yaml:"events"`
}

// Summarize totals minutes per user over all reports, highest first. Users
// with equal minutes keep the order in which they first appear.
func Summarize(reports []EventAttendanceReport) []UserTotal {
	totals := newOrderedMap[string, UserTotal]()
	for _, r := range reports {
		for _, at := range r.Attendees {
			totals.Update(at.UserID, func(t UserTotal) UserTotal {
				if t.Events == 0 {
					t.UserID = at.UserID
					t.UserName = at.UserName
				}
				t.Minutes += at.Minutes
				t.Events++
				return t
			})
		}
	}

	out := make([]UserTotal, 0, totals.Len())
	totals.Each(func(_ string, t UserTotal) {
		t.Hours = FormatHours(t.Minutes)
		out = append(out, t)
	})
	slices.SortStableFunc(out, func(x, y UserTotal) int {
		switch {
		case x.Minutes > y.Minutes:
			return -1
		case x.Minutes < y.Minutes:
			return 1
		}
		return 0
	})
	return out
}

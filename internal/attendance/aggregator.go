package attendance

import (
	"maps"
	"slices"
	"time"
)

// Aggregator builds attendance reports. It holds no per-run state and is
// safe for concurrent use.
type Aggregator struct {
	rules Rules
}

func New(rules Rules) *Aggregator {
	return &Aggregator{rules: rules}
}

type datedEvent struct {
	row   EventRow
	at    time.Time
	valid bool
}

// Aggregate produces one report per retained event, ordered by event date.
// Events with an unparsable date come first. Sessions for the same
// (event, user) pair are summed into a single attendee, and attendees keep the
// order in which their first session appeared.
func (a *Aggregator) Aggregate(events []EventRow, sessions []SessionRow, users []UserLookupRow) []EventAttendanceReport {
	reports := make([]EventAttendanceReport, 0)
	if len(events) == 0 || len(sessions) == 0 {
		return reports
	}

	retained := a.retain(events)
	bySession := indexSessions(sessions)
	names := indexNames(users)

	for _, ev := range retained {
		attendees := make([]Attendee, 0)
		if rows, ok := bySession.Get(ev.row.ID); ok {
			attendees = groupAttendees(rows, names)
		}
		reports = append(reports, EventAttendanceReport{
			ID:             ev.row.ID,
			EventName:      ev.row.EventName,
			EventDate:      ev.row.EventDate,
			Extra:          copyExtra(ev.row.Extra),
			Attendees:      attendees,
			TotalAttendees: len(attendees),
		})
	}
	return reports
}

// Excluded counts the events dropped by the rules, keyed by reason.
func (a *Aggregator) Excluded(events []EventRow) map[ExclusionReason]int {
	out := make(map[ExclusionReason]int)
	for _, ev := range events {
		if r := a.rules.Classify(ev.EventName); r != Included {
			out[r]++
		}
	}
	return out
}

func (a *Aggregator) retain(events []EventRow) []datedEvent {
	kept := make([]datedEvent, 0, len(events))
	for _, ev := range events {
		if a.rules.Classify(ev.EventName) != Included {
			continue
		}
		at, ok := ParseEventDate(ev.EventDate)
		kept = append(kept, datedEvent{row: ev, at: at, valid: ok})
	}

	slices.SortStableFunc(kept, func(x, y datedEvent) int {
		switch {
		case x.valid == y.valid:
			return x.at.Compare(y.at)
		case !x.valid:
			return -1
		default:
			return 1
		}
	})
	return kept
}

// indexSessions groups sessions by event id in one pass.
func indexSessions(sessions []SessionRow) *orderedMap[string, []SessionRow] {
	idx := newOrderedMap[string, []SessionRow]()
	for _, s := range sessions {
		idx.Update(s.EventID, func(rows []SessionRow) []SessionRow {
			return append(rows, s)
		})
	}
	return idx
}

// indexNames keeps the first non-empty name seen for each user id.
func indexNames(users []UserLookupRow) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		if u.UserName == "" {
			continue
		}
		if _, ok := names[u.UserID]; !ok {
			names[u.UserID] = u.UserName
		}
	}
	return names
}

func groupAttendees(rows []SessionRow, names map[string]string) []Attendee {
	minutes := newOrderedMap[string, float64]()
	for _, s := range rows {
		minutes.Update(s.UserID, func(total float64) float64 {
			return total + s.Minutes
		})
	}

	out := make([]Attendee, 0, minutes.Len())
	minutes.Each(func(userID string, total float64) {
		out = append(out, Attendee{
			UserID:   userID,
			UserName: resolveName(names, userID),
			Minutes:  total,
			Hours:    FormatHours(total),
		})
	})
	return out
}

func resolveName(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok {
		return name
	}
	return "User " + userID
}

func copyExtra(extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return nil
	}
	return maps.Clone(extra)
}

// Package attendance turns raw event and session rows into per-event
// attendance reports with summed, named attendees.
package attendance

// EventRow is one attendance-eligible occurrence from the events export.
type EventRow struct {
	ID        string
	EventName string
	EventDate string
	// Extra holds any other columns of the source row.
	Extra map[string]string
}

// SessionRow ties a user to an event for a number of minutes.
type SessionRow struct {
	EventID string
	UserID  string
	Minutes float64
}

// UserLookupRow supplies a display name for a user id.
type UserLookupRow struct {
	UserID   string
	UserName string
}

type Attendee struct {
	UserID   string  `json:"userId" yaml:"userId"`
	UserName string  `json:"userName" yaml:"userName"`
	Minutes  float64 `json:"minutes" yaml:"minutes"`
	Hours    string  `json:"hours" yaml:"hours"`
}

// EventAttendanceReport is the report entry for a single retained event.
type EventAttendanceReport struct {
	ID             string            `json:"id" yaml:"id"`
	EventName      string            `json:"event_name" yaml:"event_name"`
	EventDate      string            `json:"event_date" yaml:"event_date"`
	Extra          map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
	Attendees      []Attendee        `json:"attendees" yaml:"attendees"`
	TotalAttendees int               `json:"totalAttendees" yaml:"totalAttendees"`
}

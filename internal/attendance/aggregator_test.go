package attendance

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carWashFixture() ([]EventRow, []SessionRow, []UserLookupRow) {
	events := []EventRow{
		{ID: "1", EventName: "Car Wash", EventDate: "2025-03-01"},
		{ID: "2", EventName: "Manual Hours Correction", EventDate: "2025-02-01"},
	}
	sessions := []SessionRow{
		{EventID: "1", UserID: "u1", Minutes: 30},
		{EventID: "1", UserID: "u1", Minutes: 15},
		{EventID: "1", UserID: "u2", Minutes: 45},
	}
	users := []UserLookupRow{{UserID: "u1", UserName: "Alice"}}
	return events, sessions, users
}

func TestAggregate_CarWash(t *testing.T) {
	events, sessions, users := carWashFixture()

	got := New(DefaultRules()).Aggregate(events, sessions, users)

	want := []EventAttendanceReport{{
		ID:        "1",
		EventName: "Car Wash",
		EventDate: "2025-03-01",
		Attendees: []Attendee{
			{UserID: "u1", UserName: "Alice", Minutes: 45, Hours: "0.75"},
			{UserID: "u2", UserName: "User u2", Minutes: 45, Hours: "0.75"},
		},
		TotalAttendees: 2,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	events, sessions, users := carWashFixture()
	agg := New(DefaultRules())

	first, err := json.Marshal(agg.Aggregate(events, sessions, users))
	require.NoError(t, err)
	second, err := json.Marshal(agg.Aggregate(events, sessions, users))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestAggregate_EmptyInputs(t *testing.T) {
	events, sessions, users := carWashFixture()
	agg := New(DefaultRules())

	tests := []struct {
		name     string
		events   []EventRow
		sessions []SessionRow
	}{
		{"no events", nil, sessions},
		{"no sessions", events, nil},
		{"neither", nil, nil},
		{"empty slices", []EventRow{}, []SessionRow{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Aggregate(tt.events, tt.sessions, users)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestAggregate_ExcludesMarkedAndNamelessEvents(t *testing.T) {
	events := []EventRow{
		{ID: "1", EventName: "Build Night", EventDate: "2025-01-10"},
		{ID: "2", EventName: "Manual Hours - Jan", EventDate: "2025-01-11"},
		{ID: "3", EventName: "Template DON'T DELETE", EventDate: "2025-01-12"},
		{ID: "4", EventName: "", EventDate: "2025-01-13"},
		{ID: "5", EventName: "   ", EventDate: "2025-01-14"},
		{ID: "6", EventName: "manual hours lowercase", EventDate: "2025-01-15"},
	}
	var sessions []SessionRow
	for _, ev := range events {
		sessions = append(sessions, SessionRow{EventID: ev.ID, UserID: "u1", Minutes: 60})
	}

	got := New(DefaultRules()).Aggregate(events, sessions, nil)

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	// Matching is case-sensitive, so event 6 stays.
	assert.Equal(t, []string{"1", "6"}, ids)
}

func TestAggregate_SumsPerEventAndUser(t *testing.T) {
	events := []EventRow{
		{ID: "a", EventName: "Outreach A", EventDate: "2025-04-01"},
		{ID: "b", EventName: "Outreach B", EventDate: "2025-04-02"},
	}
	sessions := []SessionRow{
		{EventID: "a", UserID: "u1", Minutes: 10},
		{EventID: "b", UserID: "u1", Minutes: 100},
		{EventID: "a", UserID: "u2", Minutes: 5},
		{EventID: "a", UserID: "u1", Minutes: 20},
		{EventID: "a", UserID: "u1", Minutes: -5},
		{EventID: "zzz", UserID: "u9", Minutes: 999},
	}

	got := New(DefaultRules()).Aggregate(events, sessions, nil)
	require.Len(t, got, 2)

	a := got[0]
	assert.Equal(t, "a", a.ID)
	require.Len(t, a.Attendees, 2)
	assert.Equal(t, "u1", a.Attendees[0].UserID)
	assert.Equal(t, float64(25), a.Attendees[0].Minutes)
	assert.Equal(t, "0.42", a.Attendees[0].Hours)
	assert.Equal(t, "u2", a.Attendees[1].UserID)
	assert.Equal(t, 2, a.TotalAttendees)

	b := got[1]
	require.Len(t, b.Attendees, 1)
	assert.Equal(t, float64(100), b.Attendees[0].Minutes)
	assert.Equal(t, "1.67", b.Attendees[0].Hours)
}

func TestAggregate_EventWithoutSessions(t *testing.T) {
	events := []EventRow{
		{ID: "1", EventName: "Kickoff", EventDate: "2025-01-04"},
		{ID: "2", EventName: "Quiet Day", EventDate: "2025-01-05"},
	}
	sessions := []SessionRow{{EventID: "1", UserID: "u1", Minutes: 30}}

	got := New(DefaultRules()).Aggregate(events, sessions, nil)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[1].TotalAttendees)
	assert.NotNil(t, got[1].Attendees)

	raw, err := json.Marshal(got[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"attendees":[]`)
}

func TestAggregate_OrdersByDateWithInvalidFirst(t *testing.T) {
	events := []EventRow{
		{ID: "late", EventName: "Late", EventDate: "2025-06-01"},
		{ID: "bad1", EventName: "Bad one", EventDate: "not a date"},
		{ID: "early", EventName: "Early", EventDate: "2025-01-01T09:00:00Z"},
		{ID: "old", EventName: "Before epoch", EventDate: "1960-05-05"},
		{ID: "bad2", EventName: "Bad two", EventDate: ""},
		{ID: "same", EventName: "Same day as late", EventDate: "2025-06-01"},
	}
	sessions := []SessionRow{{EventID: "late", UserID: "u", Minutes: 1}}

	got := New(DefaultRules()).Aggregate(events, sessions, nil)

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"bad1", "bad2", "old", "early", "late", "same"}, ids)
}

func TestAggregate_NameResolution(t *testing.T) {
	events := []EventRow{{ID: "1", EventName: "Demo", EventDate: "2025-01-01"}}
	sessions := []SessionRow{
		{EventID: "1", UserID: "42", Minutes: 60},
		{EventID: "1", UserID: "7", Minutes: 60},
		{EventID: "1", UserID: "8", Minutes: 60},
	}
	users := []UserLookupRow{
		{UserID: "42", UserName: "Grace"},
		{UserID: "42", UserName: "Someone Else"},
		{UserID: "8", UserName: ""},
		{UserID: "8", UserName: "Ada"},
	}

	got := New(DefaultRules()).Aggregate(events, sessions, users)
	require.Len(t, got, 1)

	names := make(map[string]string)
	for _, at := range got[0].Attendees {
		names[at.UserID] = at.UserName
	}
	assert.Equal(t, map[string]string{"42": "Grace", "7": "User 7", "8": "Ada"}, names)
}

func TestAggregate_CarriesExtraColumns(t *testing.T) {
	extra := map[string]string{"location": "Gym"}
	events := []EventRow{{ID: "1", EventName: "Demo", EventDate: "2025-01-01", Extra: extra}}
	sessions := []SessionRow{{EventID: "1", UserID: "u", Minutes: 60}}

	got := New(DefaultRules()).Aggregate(events, sessions, nil)
	require.Len(t, got, 1)
	assert.Equal(t, extra, got[0].Extra)

	extra["location"] = "changed"
	assert.Equal(t, "Gym", got[0].Extra["location"])
}

func TestAggregate_LinearIndexHandlesManyEvents(t *testing.T) {
	const n = 2000
	events := make([]EventRow, 0, n)
	sessions := make([]SessionRow, 0, 3*n)
	for i := 0; i < n; i++ {
		id := fmt.Sprint(i)
		events = append(events, EventRow{ID: id, EventName: "Event " + id, EventDate: "2025-01-01"})
		for j := 0; j < 3; j++ {
			sessions = append(sessions, SessionRow{EventID: id, UserID: "u", Minutes: 20})
		}
	}

	got := New(DefaultRules()).Aggregate(events, sessions, nil)
	require.Len(t, got, n)
	for _, r := range got {
		require.Equal(t, 1, r.TotalAttendees)
		require.Equal(t, float64(60), r.Attendees[0].Minutes)
	}
	// Same date everywhere, so the stable sort keeps input order.
	assert.Equal(t, "0", got[0].ID)
	assert.Equal(t, fmt.Sprint(n-1), got[n-1].ID)
}

func TestExcluded(t *testing.T) {
	events := []EventRow{
		{ID: "1", EventName: "Real"},
		{ID: "2", EventName: "Manual Hours"},
		{ID: "3", EventName: "Manual Hours 2"},
		{ID: "4", EventName: "DON'T DELETE"},
		{ID: "5"},
	}

	got := New(DefaultRules()).Excluded(events)

	assert.Equal(t, map[ExclusionReason]int{
		ManualHours: 2,
		Placeholder: 1,
		MissingName: 1,
	}, got)
}

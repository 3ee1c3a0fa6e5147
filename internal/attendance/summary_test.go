package attendance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	reports := []EventAttendanceReport{
		{ID: "1", Attendees: []Attendee{
			{UserID: "u1", UserName: "Alice", Minutes: 30},
			{UserID: "u2", UserName: "User u2", Minutes: 90},
		}},
		{ID: "2", Attendees: []Attendee{
			{UserID: "u3", UserName: "Cam", Minutes: 60},
			{UserID: "u1", UserName: "Alice", Minutes: 30},
		}},
		{ID: "3", Attendees: []Attendee{}},
	}

	got := Summarize(reports)

	want := []UserTotal{
		{UserID: "u2", UserName: "User u2", Minutes: 90, Hours: "1.50", Events: 1},
		{UserID: "u1", UserName: "Alice", Minutes: 60, Hours: "1.00", Events: 2},
		{UserID: "u3", UserName: "Cam", Minutes: 60, Hours: "1.00", Events: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Summarize(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestOrderedMap_KeepsFirstInsertionOrder(t *testing.T) {
	m := newOrderedMap[string, int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Update("b", func(v int) int { return v + 10 })
	m.Update("c", func(v int) int { return v + 1 })

	var keys []string
	var vals []int
	m.Each(func(k string, v int) {
		keys = append(keys, k)
		vals = append(vals, v)
	})

	if diff := cmp.Diff([]string{"b", "a", "c"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{11, 2, 1}, vals); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if v, ok := m.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

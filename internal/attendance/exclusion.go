package attendance

import "strings"

// ExclusionReason says why an event row is kept out of the report.
type ExclusionReason int

const (
	Included ExclusionReason = iota
	MissingName
	ManualHours
	Placeholder
)

func (r ExclusionReason) String() string {
	switch r {
	case Included:
		return "included"
	case MissingName:
		return "missing_name"
	case ManualHours:
		return "manual_hours"
	case Placeholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

const (
	DefaultManualHoursMarker = "Manual Hours"
	DefaultPlaceholderMarker = "DON'T DELETE"
)

// Rules holds the event-name markers that exclude pseudo-events.
// Matching is a case-sensitive substring test.
type Rules struct {
	ManualHoursMarker string
	PlaceholderMarker string
}

func DefaultRules() Rules {
	return Rules{
		ManualHoursMarker: DefaultManualHoursMarker,
		PlaceholderMarker: DefaultPlaceholderMarker,
	}
}

// Classify reports whether an event with the given name belongs in the report.
// An empty marker never matches.
func (r Rules) Classify(name string) ExclusionReason {
	if strings.TrimSpace(name) == "" {
		return MissingName
	}
	if r.ManualHoursMarker != "" && strings.Contains(name, r.ManualHoursMarker) {
		return ManualHours
	}
	if r.PlaceholderMarker != "" && strings.Contains(name, r.PlaceholderMarker) {
		return Placeholder
	}
	return Included
}

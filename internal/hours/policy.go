// Package hours decides whether an instant falls inside the support team's
// staffed window.
package hours

import "time"

// TimeWindow describes the staffed window as seconds since local midnight
// plus the set of staffed weekdays. Immutable configuration.
type TimeWindow struct {
	StartSecondOfDay int
	EndSecondOfDay   int
	BusinessDays     map[time.Weekday]bool
}

// DefaultWindow is Mon-Fri 08:00:00-17:00:00.
func DefaultWindow() TimeWindow {
	return TimeWindow{
		StartSecondOfDay: 8 * 3600,
		EndSecondOfDay:   17 * 3600,
		BusinessDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
	}
}

// IsAfterHours reports whether t falls outside the window. The start and end
// instants themselves count as business hours. Pure function of its inputs;
// the caller supplies the instant.
func IsAfterHours(t time.Time, w TimeWindow) bool {
	if !w.BusinessDays[t.Weekday()] {
		return true
	}
	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return sec < w.StartSecondOfDay || sec > w.EndSecondOfDay
}

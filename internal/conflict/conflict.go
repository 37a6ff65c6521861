// Package conflict decides whether two same-day booking time ranges collide.
//
// The overlap rule is inclusive at both boundaries: a booking that starts
// exactly when another ends is a conflict. Callers depend on this exact
// behavior, so it must not be relaxed to half-open semantics.
package conflict

import (
	"fmt"
	"time"

	"roombooker/internal/models"
)

// ParseClock converts a wall-clock "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SpanOverlaps reports whether [s1,e1] and [s2,e2] (minutes since midnight)
// collide. A span overlaps another when its start falls within the other
// span, its end falls within the other span, or it fully contains the other
// span. All comparisons are inclusive.
func SpanOverlaps(s1, e1, s2, e2 int) bool {
	if s1 >= s2 && s1 <= e2 {
		return true
	}
	if e1 >= s2 && e1 <= e2 {
		return true
	}
	return s1 <= s2 && e1 >= e2
}

// HasConflict reports whether the candidate range [start,end] collides with
// any booking in existing, skipping the booking whose id equals excludeID
// (pass 0 to exclude nothing). The caller is responsible for filtering
// existing to the relevant room, date and status; this function only does
// interval math. It returns an error if any time string is malformed.
func HasConflict(start, end string, existing []models.Booking, excludeID int64) (bool, error) {
	s1, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	e1, err := ParseClock(end)
	if err != nil {
		return false, err
	}

	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		s2, err := ParseClock(b.StartTime)
		if err != nil {
			return false, fmt.Errorf("booking %d: %w", b.ID, err)
		}
		e2, err := ParseClock(b.EndTime)
		if err != nil {
			return false, fmt.Errorf("booking %d: %w", b.ID, err)
		}
		if SpanOverlaps(s1, e1, s2, e2) {
			return true, nil
		}
	}

	return false, nil
}

package scheduler

import (
	"fmt"

	"github.com/appointa/appointa/models"
)

const blockedCohesionMessage = "An appointment cannot be marked as blocked while allowing overlaps. " +
	"Set 'prevents_overlap=True' when 'is_blocked=True'."

// ValidateTimeCohesion rejects a start time at or after the end time.
// A nil end time is "not yet computed" and passes.
func ValidateTimeCohesion(start models.TimeOfDay, end *models.TimeOfDay) *Violation {
	if end == nil || start < *end {
		return nil
	}
	return &Violation{
		Field: "start_time",
		Kind:  KindCohesion,
		Message: fmt.Sprintf(
			"The start time (%s) must be earlier than the end time (%s).",
			start, *end,
		),
	}
}

// ValidateBlockedCohesion rejects a blocked slot that would still allow
// concurrent bookings.
func ValidateBlockedCohesion(isBlocked, preventsOverlap bool) *Violation {
	if !isBlocked || preventsOverlap {
		return nil
	}
	return &Violation{
		Field:   "is_blocked",
		Kind:    KindCohesion,
		Message: blockedCohesionMessage,
	}
}

package scheduler

import (
	"fmt"
	"time"

	"github.com/appointa/appointa/models"
)

// AppointmentWindow is the slice of a stored appointment the conflict
// detector needs: its identity and time range.
type AppointmentWindow struct {
	ID        uint
	StartTime models.TimeOfDay
	EndTime   models.TimeOfDay
}

// ConflictDescriptor describes a schedule conflict between a candidate
// appointment and a committed one for a shared provider.
type ConflictDescriptor struct {
	ProviderID       uint             `json:"provider_id"`
	ProviderLabel    string           `json:"provider"`
	Date             time.Time        `json:"date"`
	CandidateStart   models.TimeOfDay `json:"candidate_start"`
	CandidateEnd     models.TimeOfDay `json:"candidate_end"`
	ConflictingStart models.TimeOfDay `json:"conflicting_start"`
	ConflictingEnd   models.TimeOfDay `json:"conflicting_end"`
}

// Message renders the conflict in the exact wording callers depend on.
func (d *ConflictDescriptor) Message() string {
	return fmt.Sprintf(
		"Schedule conflict for provider %s on %s between %s and %s. "+
			"Conflicts with existing appointment from %s to %s.",
		d.ProviderLabel,
		d.Date.Format("2006-01-02"),
		d.CandidateStart, d.CandidateEnd,
		d.ConflictingStart, d.ConflictingEnd,
	)
}

// findConflict picks the first stored window that overlaps the
// candidate's interval. Storage order decides ties; any one conflict is
// enough to reject.
func findConflict(c *Candidate, providerID uint, providerLabel string, windows []AppointmentWindow) *ConflictDescriptor {
	start, end := c.Interval()
	for _, w := range windows {
		if w.ID == c.ID && c.ID != 0 {
			continue
		}
		if !Overlaps(start, end, w.StartTime, w.EndTime) {
			continue
		}
		return &ConflictDescriptor{
			ProviderID:       providerID,
			ProviderLabel:    providerLabel,
			Date:             c.Date,
			CandidateStart:   start,
			CandidateEnd:     end,
			ConflictingStart: w.StartTime,
			ConflictingEnd:   w.EndTime,
		}
	}
	return nil
}

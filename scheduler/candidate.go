package scheduler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/appointa/appointa/models"
)

// Candidate is a proposed appointment together with its proposed
// relation sets, before validation. A zero ID means a new appointment;
// a non-zero ID excludes the appointment itself from conflict checks
// during an update.
//
// The pipeline mutates EndTime and Price in place when the auto flags
// ask for computed values.
type Candidate struct {
	ID              uint                     `json:"id,omitempty"`
	Date            time.Time                `json:"date"`
	StartTime       models.TimeOfDay         `json:"start_time"`
	EndTime         *models.TimeOfDay        `json:"end_time"`
	Status          models.AppointmentStatus `json:"status"`
	Price           decimal.Decimal          `json:"price"`
	AutoPrice       bool                     `json:"auto_price"`
	AutoEndTime     bool                     `json:"auto_end_time"`
	IsBlocked       bool                     `json:"is_blocked"`
	PreventsOverlap bool                     `json:"prevents_overlap"`

	ProviderIDs  []uint `json:"provider_ids"`
	RecipientIDs []uint `json:"recipient_ids"`
	ActivityIDs  []uint `json:"activity_ids"`
}

// Interval returns the candidate's half-open interval. A nil end time
// collapses to a zero-length interval at the start time, which
// conflicts only when the start falls strictly inside another
// appointment.
func (c *Candidate) Interval() (start, end models.TimeOfDay) {
	start = c.StartTime
	end = c.StartTime
	if c.EndTime != nil {
		end = *c.EndTime
	}
	return start, end
}

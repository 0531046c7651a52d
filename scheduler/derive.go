package scheduler

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivitySnapshot is the price and duration of a linked activity as
// read at save time. Later edits to the activity row do not touch
// appointments that were computed from an earlier snapshot.
type ActivitySnapshot struct {
	ActivityID uint
	Price      decimal.Decimal
	Duration   time.Duration
}

// applyAutoEndTime sets the candidate's end time to start + the sum of
// the linked activity durations. Skipped when the flag is off or no
// activities are linked; in either case a still-missing end time falls
// back to the start time.
func applyAutoEndTime(c *Candidate, snapshots []ActivitySnapshot) {
	if !c.AutoEndTime || len(snapshots) == 0 {
		if c.EndTime == nil {
			end := c.StartTime
			c.EndTime = &end
		}
		return
	}

	var total time.Duration
	for _, s := range snapshots {
		total += s.Duration
	}
	end := c.StartTime.Add(total)
	c.EndTime = &end
}

// applyAutoPrice sets the candidate's price to the sum of the linked
// activity prices. Skipped when the flag is off or no activities are
// linked; the caller-supplied price then stands.
func applyAutoPrice(c *Candidate, snapshots []ActivitySnapshot) {
	if !c.AutoPrice || len(snapshots) == 0 {
		return
	}

	total := decimal.Zero
	for _, s := range snapshots {
		total = total.Add(s.Price)
	}
	c.Price = total
}

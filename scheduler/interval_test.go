package scheduler

import (
	"testing"

	"github.com/appointa/appointa/models"
)

func at(hour, minute int) models.TimeOfDay {
	return models.NewTimeOfDay(hour, minute)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     models.TimeOfDay
		want                           bool
	}{
		{"identical ranges", at(14, 0), at(15, 0), at(14, 0), at(15, 0), true},
		{"fully inside", at(14, 30), at(14, 50), at(14, 0), at(15, 0), true},
		{"partial overlap at start", at(13, 30), at(14, 30), at(14, 0), at(15, 0), true},
		{"partial overlap at end", at(14, 30), at(15, 30), at(14, 0), at(15, 0), true},
		{"touching before", at(13, 0), at(14, 0), at(14, 0), at(15, 0), false},
		{"touching after", at(15, 0), at(16, 0), at(14, 0), at(15, 0), false},
		{"disjoint before", at(10, 0), at(11, 0), at(14, 0), at(15, 0), false},
		{"disjoint after", at(16, 0), at(17, 0), at(14, 0), at(15, 0), false},
		{"zero-length inside", at(14, 30), at(14, 30), at(14, 0), at(15, 0), true},
		{"zero-length at boundary", at(15, 0), at(15, 0), at(14, 0), at(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Fatalf("Overlaps(%v, %v, %v, %v) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// Overlap is symmetric
			mirrored := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
			if mirrored != tc.want {
				t.Fatalf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

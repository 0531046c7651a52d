package models

import (
	"testing"
	"time"
)

func TestFromDurationNormalizesMinutes(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want Duration
	}{
		{90 * time.Minute, Duration{Hours: 1, Minutes: 30}},
		{60 * time.Minute, Duration{Hours: 1, Minutes: 0}},
		{45 * time.Minute, Duration{Hours: 0, Minutes: 45}},
		{0, Duration{}},
	}
	for _, tc := range cases {
		if got := FromDuration(tc.in); got != tc.want {
			t.Errorf("FromDuration(%v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := Duration{Hours: 0, Minutes: 90}
	if got := FromDuration(d.ToDuration()); got != (Duration{Hours: 1, Minutes: 30}) {
		t.Errorf("normalized = %+v, want {1 30}", got)
	}
}

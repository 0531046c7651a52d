package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "15:04", want: NewTimeOfDay(15, 4)},
		{in: "15:04:05", want: NewTimeOfDay(15, 4)},
		{in: "00:00", want: 0},
		{in: "23:59", want: NewTimeOfDay(23, 59)},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "afternoon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) accepted, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayFormats(t *testing.T) {
	v := NewTimeOfDay(9, 5)
	if got := v.String(); got != "09:05:00" {
		t.Errorf("String() = %q, want %q", got, "09:05:00")
	}
	if got := v.Short(); got != "09:05" {
		t.Errorf("Short() = %q, want %q", got, "09:05")
	}
}

func TestTimeOfDayAddCapsAtMidnight(t *testing.T) {
	v := NewTimeOfDay(23, 0)
	if got := v.Add(30 * time.Minute); got != NewTimeOfDay(23, 30) {
		t.Errorf("Add(30m) = %v, want 23:30", got)
	}
	if got := v.Add(3 * time.Hour); got != TimeOfDay(MinutesPerDay) {
		t.Errorf("Add past midnight = %v, want the end-of-day cap", got)
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var v TimeOfDay
	if err := v.Scan(int64(905)); err != nil || v != TimeOfDay(905) {
		t.Errorf("Scan(int64) = %v, %v", v, err)
	}
	if err := v.Scan("14:30:00"); err != nil || v != NewTimeOfDay(14, 30) {
		t.Errorf("Scan(string) = %v, %v", v, err)
	}
	if err := v.Scan([]byte("08:15")); err != nil || v != NewTimeOfDay(8, 15) {
		t.Errorf("Scan([]byte) = %v, %v", v, err)
	}
	if err := v.Scan(3.14); err == nil {
		t.Error("Scan(float64) accepted, want error")
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	out, err := json.Marshal(NewTimeOfDay(14, 30))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"14:30"` {
		t.Errorf("marshal = %s, want \"14:30\"", out)
	}

	var v TimeOfDay
	if err := json.Unmarshal([]byte(`"16:45:30"`), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v != NewTimeOfDay(16, 45) {
		t.Errorf("unmarshal = %v, want 16:45", v)
	}
	if err := json.Unmarshal([]byte(`"later"`), &v); err == nil {
		t.Error("unmarshal of garbage accepted, want error")
	}
}

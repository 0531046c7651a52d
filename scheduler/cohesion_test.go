package scheduler

import (
	"testing"
)

func TestValidateTimeCohesion_StartAfterEnd(t *testing.T) {
	end := at(14, 0)
	v := ValidateTimeCohesion(at(15, 0), &end)
	if v == nil {
		t.Fatal("expected a violation for start after end")
	}
	want := "The start time (15:00:00) must be earlier than the end time (14:00:00)."
	if v.Message != want {
		t.Fatalf("message = %q, want %q", v.Message, want)
	}
	if v.Field != "start_time" {
		t.Fatalf("field = %q, want start_time", v.Field)
	}
	if v.Kind != KindCohesion {
		t.Fatalf("kind = %q, want %q", v.Kind, KindCohesion)
	}
}

func TestValidateTimeCohesion_StartEqualsEnd(t *testing.T) {
	end := at(14, 0)
	if v := ValidateTimeCohesion(at(14, 0), &end); v == nil {
		t.Fatal("expected a violation for start equal to end")
	}
}

func TestValidateTimeCohesion_Valid(t *testing.T) {
	end := at(15, 0)
	if v := ValidateTimeCohesion(at(14, 0), &end); v != nil {
		t.Fatalf("unexpected violation: %q", v.Message)
	}
}

func TestValidateTimeCohesion_NilEndIsNotYetComputed(t *testing.T) {
	if v := ValidateTimeCohesion(at(14, 0), nil); v != nil {
		t.Fatalf("nil end time must pass, got %q", v.Message)
	}
}

func TestValidateBlockedCohesion_BlockedAllowingOverlap(t *testing.T) {
	v := ValidateBlockedCohesion(true, false)
	if v == nil {
		t.Fatal("expected a violation for blocked slot allowing overlaps")
	}
	want := "An appointment cannot be marked as blocked while allowing overlaps. " +
		"Set 'prevents_overlap=True' when 'is_blocked=True'."
	if v.Message != want {
		t.Fatalf("message = %q, want %q", v.Message, want)
	}
	if v.Field != "is_blocked" {
		t.Fatalf("field = %q, want is_blocked", v.Field)
	}
}

func TestValidateBlockedCohesion_Valid(t *testing.T) {
	if v := ValidateBlockedCohesion(true, true); v != nil {
		t.Fatalf("blocked with prevents_overlap must pass, got %q", v.Message)
	}
	if v := ValidateBlockedCohesion(false, false); v != nil {
		t.Fatalf("unblocked appointment must pass, got %q", v.Message)
	}
}

package scheduler

import "testing"

func TestValidateMembership_DuplicateProvider(t *testing.T) {
	c := &Candidate{ProviderIDs: []uint{1, 2, 1}}

	violations := validateMembership(c)
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(violations))
	}
	want := "Appointment provider with this Appointment and Provider already exists."
	if violations[0].Message != want {
		t.Fatalf("message = %q, want %q", violations[0].Message, want)
	}
	if violations[0].Kind != KindStructural {
		t.Fatalf("kind = %q, want %q", violations[0].Kind, KindStructural)
	}
}

func TestValidateMembership_DuplicateRecipientAndActivity(t *testing.T) {
	c := &Candidate{
		RecipientIDs: []uint{7, 7},
		ActivityIDs:  []uint{3, 4, 3},
	}

	violations := validateMembership(c)
	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2", len(violations))
	}
	wantRecipient := "Appointment recipient with this Appointment and Recipient already exists."
	wantActivity := "Appointment activity with this Appointment and Activity already exists."
	if violations[0].Message != wantRecipient {
		t.Fatalf("message = %q, want %q", violations[0].Message, wantRecipient)
	}
	if violations[1].Message != wantActivity {
		t.Fatalf("message = %q, want %q", violations[1].Message, wantActivity)
	}
}

func TestValidateMembership_DistinctMembersPass(t *testing.T) {
	c := &Candidate{
		ProviderIDs:  []uint{1, 2, 3},
		RecipientIDs: []uint{4},
		ActivityIDs:  []uint{5, 6},
	}

	if violations := validateMembership(c); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

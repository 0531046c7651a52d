package scheduler

import "fmt"

// validateMembership rejects duplicate (appointment, entity) pairs in
// the proposed relation sets. The composite unique indexes in storage
// remain the source of truth; this is the early exit.
func validateMembership(c *Candidate) []Violation {
	var violations []Violation
	checks := []struct {
		field    string
		relation string
		entity   string
		ids      []uint
	}{
		{"providers", "provider", "Provider", c.ProviderIDs},
		{"recipients", "recipient", "Recipient", c.RecipientIDs},
		{"activities", "activity", "Activity", c.ActivityIDs},
	}

	for _, check := range checks {
		seen := make(map[uint]bool, len(check.ids))
		for _, id := range check.ids {
			if !seen[id] {
				seen[id] = true
				continue
			}
			violations = append(violations, Violation{
				Field: check.field,
				Kind:  KindStructural,
				Message: fmt.Sprintf(
					"Appointment %s with this Appointment and %s already exists.",
					check.relation, check.entity,
				),
			})
			break
		}
	}
	return violations
}

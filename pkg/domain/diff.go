package domain

// EligibilityDiff represents the changes between two resolution passes.
// It is designed to be serialized to JSON for partial updates on the
// client: only courses whose label changed are present.
type EligibilityDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Changed maps course code to its new eligibility label.
	Changed map[string]Eligibility `json:"changed,omitempty"`
}

// DiffEligibility calculates the difference between two eligibility
// mappings. If old is nil, the full new mapping is reported (initial
// load). Returns nil when nothing changed.
func DiffEligibility(sessionID string, old, new map[string]Eligibility) *EligibilityDiff {
	if new == nil {
		return nil
	}

	changed := make(map[string]Eligibility)
	for code, label := range new {
		if old == nil {
			changed[code] = label
			continue
		}
		if prev, ok := old[code]; !ok || prev != label {
			changed[code] = label
		}
	}

	if len(changed) == 0 {
		return nil
	}
	return &EligibilityDiff{SessionID: sessionID, Changed: changed}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *EligibilityDiff) IsEmpty() bool {
	return d == nil || len(d.Changed) == 0
}

package domain

import "testing"

func TestDiffEligibility_InitialLoad(t *testing.T) {
	next := map[string]Eligibility{"A": EligibilityEligible, "B": EligibilityLocked}

	diff := DiffEligibility("s1", nil, next)
	if diff.IsEmpty() {
		t.Fatal("initial load should report the full mapping")
	}
	if len(diff.Changed) != 2 {
		t.Errorf("expected 2 entries, got %d", len(diff.Changed))
	}
	if diff.SessionID != "s1" {
		t.Errorf("wrong session id: %s", diff.SessionID)
	}
}

func TestDiffEligibility_OnlyChanges(t *testing.T) {
	old := map[string]Eligibility{"A": EligibilityLocked, "B": EligibilityLocked}
	next := map[string]Eligibility{"A": EligibilityEligible, "B": EligibilityLocked}

	diff := DiffEligibility("s1", old, next)
	if len(diff.Changed) != 1 {
		t.Fatalf("expected 1 change, got %v", diff.Changed)
	}
	if diff.Changed["A"] != EligibilityEligible {
		t.Errorf("wrong new label: %s", diff.Changed["A"])
	}
}

func TestDiffEligibility_NoChanges(t *testing.T) {
	same := map[string]Eligibility{"A": EligibilityEligible}

	diff := DiffEligibility("s1", same, same)
	if !diff.IsEmpty() {
		t.Errorf("identical mappings should diff to nil, got %v", diff)
	}
}

func TestDiffEligibility_NilNew(t *testing.T) {
	if diff := DiffEligibility("s1", nil, nil); !diff.IsEmpty() {
		t.Errorf("nil new mapping should diff to nil, got %v", diff)
	}
}

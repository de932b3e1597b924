package espalier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
)

// testPlan is a small curriculum exercising both edge kinds: a
// prerequisite chain plus a lecture+lab co-requisite package.
func testPlan() plan.Document {
	return plan.Document{
		"MAT-14100": {Name: "Cálculo I", Credits: 8, Semester: 1},
		"MAT-14200": {Name: "Cálculo II", Credits: 8, Semester: 2, Prerequisites: []string{"MAT-14100"}},
		"COM-11101": {Name: "Algoritmos y Programas", Credits: 6, Semester: 1, Corequisites: []string{"COM-11102"}},
		"COM-11102": {Name: "Laboratorio de Algoritmos", Credits: 2, Semester: 1, Corequisites: []string{"COM-11101"}},
	}
}

func TestEngine_Integration(t *testing.T) {
	// 0. Setup: a source holding one plan, default in-memory store.
	raw, err := plan.EncodeJSON(testPlan())
	if err != nil {
		t.Fatal(err)
	}
	src := memory.NewSource(map[string][]byte{"itam": raw})

	engine, err := espalier.New(espalier.WithPlanSource(src))
	if err != nil {
		t.Fatalf("failed to initialize engine: %v", err)
	}
	ctx := context.Background()

	// 1. Plan listing.
	plans, err := engine.Plans(ctx)
	if err != nil || len(plans) != 1 || plans[0] != "itam" {
		t.Fatalf("Plans = %v, %v", plans, err)
	}

	// 2. Start a session and check the initial resolution.
	elig, err := engine.StartSession(ctx, "s1", "itam")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if elig["MAT-14100"] != domain.EligibilityEligible {
		t.Errorf("MAT-14100 should start eligible, got %s", elig["MAT-14100"])
	}
	if elig["MAT-14200"] != domain.EligibilityLocked {
		t.Errorf("MAT-14200 should start locked, got %s", elig["MAT-14200"])
	}
	if elig["COM-11101"] != domain.EligibilityLocked {
		t.Errorf("mutual coreq should start locked, got %s", elig["COM-11101"])
	}

	// 3. Completing the prerequisite unlocks the dependent.
	elig, err = engine.UpdateStatus(ctx, "s1", "MAT-14100", domain.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if elig["MAT-14100"] != domain.EligibilityCompleted {
		t.Errorf("completed course should read completed, got %s", elig["MAT-14100"])
	}
	if elig["MAT-14200"] != domain.EligibilityEligible {
		t.Errorf("dependent should unlock, got %s", elig["MAT-14200"])
	}

	// 4. Starting the whole coreq package unlocks both members.
	elig, err = engine.UpdateGroup(ctx, "s1", "COM-11101", domain.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if elig["COM-11101"] != domain.EligibilityEligible || elig["COM-11102"] != domain.EligibilityEligible {
		t.Errorf("started package should be eligible, got %s / %s", elig["COM-11101"], elig["COM-11102"])
	}

	// 5. Export carries the mutated statuses.
	doc, err := engine.Export(ctx, "s1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if doc["MAT-14100"].Status != int(domain.StatusCompleted) {
		t.Errorf("export lost update: %+v", doc["MAT-14100"])
	}
	if doc["COM-11102"].Status != int(domain.StatusInProgress) {
		t.Errorf("export lost group update: %+v", doc["COM-11102"])
	}

	// 6. Reset returns everything to not-taken.
	elig, err = engine.Reset(ctx, "s1")
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if elig["MAT-14200"] != domain.EligibilityLocked {
		t.Errorf("reset should re-lock dependents, got %s", elig["MAT-14200"])
	}

	// 7. End the session; further reads must fail.
	if err := engine.EndSession(ctx, "s1"); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if _, err := engine.Eligibility(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after EndSession, got %v", err)
	}
}

func TestEngine_ExportRoundTrip(t *testing.T) {
	// Loading an exported document must reproduce the same state.
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := engine.LoadDocument(ctx, "s1", "itam", testPlan()); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if _, err := engine.UpdateStatus(ctx, "s1", "MAT-14100", domain.StatusCompleted); err != nil {
		t.Fatal(err)
	}
	before, err := engine.Eligibility(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}

	doc, err := engine.Export(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	after, err := engine.LoadDocument(ctx, "s2", "itam-copy", doc)
	if err != nil {
		t.Fatalf("reloading exported document failed: %v", err)
	}

	for code, label := range before {
		if after[code] != label {
			t.Errorf("round trip changed %s: %s vs %s", code, label, after[code])
		}
	}
}

func TestEngine_UnknownCourseLeavesStateUntouched(t *testing.T) {
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	before, err := engine.LoadDocument(ctx, "s1", "itam", testPlan())
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.UpdateStatus(ctx, "s1", "GHOST-00000", domain.StatusCompleted)
	var unknown *domain.UnknownCourseError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCourseError, got %v", err)
	}

	after, err := engine.Eligibility(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	for code, label := range before {
		if after[code] != label {
			t.Errorf("rejected update mutated %s: %s vs %s", code, label, after[code])
		}
	}
}

func TestEngine_InvalidStatusRejected(t *testing.T) {
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := engine.LoadDocument(ctx, "s1", "itam", testPlan()); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.UpdateStatus(ctx, "s1", "MAT-14100", domain.Status(7)); err == nil {
		t.Error("expected error for out-of-range status")
	}
}

func TestEngine_LoadDocumentRejectsBrokenPlans(t *testing.T) {
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	broken := plan.Document{
		"A": {Name: "A", Prerequisites: []string{"B"}},
		"B": {Name: "B", Prerequisites: []string{"A"}},
	}
	if _, err := engine.LoadDocument(ctx, "s1", "broken", broken); err == nil {
		t.Fatal("expected compile error")
	}

	// No session state was created for the rejected load.
	if _, err := engine.Eligibility(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEngine_Groups(t *testing.T) {
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := engine.LoadDocument(ctx, "s1", "itam", testPlan()); err != nil {
		t.Fatal(err)
	}

	groups, err := engine.Groups(ctx, "s1")
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	// All three packages are enrollable initially except MAT-14200's,
	// whose prerequisite is not completed.
	if len(groups) != 3 {
		t.Fatalf("expected 3 enrollable groups, got %d: %v", len(groups), groups)
	}
	for _, g := range groups {
		for _, code := range g.Codes {
			if code == "MAT-14200" {
				t.Errorf("MAT-14200 should not be enrollable yet: %v", groups)
			}
		}
	}

	// The lecture+lab package comes back as one group.
	var pkg *domain.CoreqGroup
	for i := range groups {
		if len(groups[i].Codes) == 2 {
			pkg = &groups[i]
		}
	}
	if pkg == nil || pkg.Codes[0] != "COM-11101" || pkg.Codes[1] != "COM-11102" {
		t.Errorf("lecture+lab package missing: %v", groups)
	}
}

func TestEngine_SessionIsolation(t *testing.T) {
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := engine.LoadDocument(ctx, "a", "itam", testPlan()); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.LoadDocument(ctx, "b", "itam", testPlan()); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.UpdateStatus(ctx, "a", "MAT-14100", domain.StatusCompleted); err != nil {
		t.Fatal(err)
	}

	elig, err := engine.Eligibility(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if elig["MAT-14100"] != domain.EligibilityEligible {
		t.Errorf("update in session a leaked into session b: %s", elig["MAT-14100"])
	}
}

func TestEngine_Name(t *testing.T) {
	engine, err := espalier.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := engine.LoadDocument(ctx, "s1", "itam", testPlan()); err != nil {
		t.Fatal(err)
	}
	name, err := engine.Name(ctx, "s1")
	if err != nil || name != "itam" {
		t.Errorf("Name = %q, %v", name, err)
	}
}

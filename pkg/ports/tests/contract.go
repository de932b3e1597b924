// Package tests provides reusable contract suites for ports
// implementations. Every adapter runs the same suite so behavioral drift
// between backends is caught at the interface boundary.
package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/plan"
)

// PlanSourceContractTest verifies that an adapter complies with
// ports.PlanSource. setupData maps plan ID to the raw bytes the source
// is expected to serve.
func PlanSourceContractTest(t *testing.T, source ports.PlanSource, setupData map[string][]byte) {
	t.Helper()

	t.Run("Get_Success", func(t *testing.T) {
		for id, expected := range setupData {
			data, format, err := source.Get(id)
			if err != nil {
				t.Fatalf("unexpected error getting plan %s: %v", id, err)
			}
			if string(data) != string(expected) {
				t.Errorf("content mismatch for %s. got %q, want %q", id, data, expected)
			}
			if format != plan.FormatJSON && format != plan.FormatYAML {
				t.Errorf("plan %s returned unknown format %q", id, format)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, _, err := source.Get("non-existent-plan")
		if err == nil {
			t.Error("expected error for non-existent plan, got nil")
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := source.List()
		if err != nil {
			t.Fatalf("unexpected error listing plans: %v", err)
		}
		if len(ids) != len(setupData) {
			t.Errorf("expected %d plans, got %d", len(setupData), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range setupData {
			if !lookup[id] {
				t.Errorf("plan %s missing from list", id)
			}
		}
	})
}

// RunProgressStoreContract verifies that an adapter complies with
// ports.ProgressStore, including the not-found sentinel and isolation of
// stored snapshots from caller mutation.
func RunProgressStoreContract(t *testing.T, store ports.ProgressStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-session")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		progress := domain.Progress{
			"COM-11101": domain.StatusCompleted,
			"MAT-14100": domain.StatusInProgress,
			"EST-11101": domain.StatusNotTaken,
		}
		if err := store.Save(ctx, "s1", progress); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "s1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(loaded) != len(progress) {
			t.Fatalf("expected %d entries, got %d", len(progress), len(loaded))
		}
		for code, status := range progress {
			if loaded[code] != status {
				t.Errorf("course %s: got %v, want %v", code, loaded[code], status)
			}
		}
	})

	t.Run("Isolation", func(t *testing.T) {
		progress := domain.Progress{"COM-11101": domain.StatusNotTaken}
		if err := store.Save(ctx, "s2", progress); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		// Mutating the snapshot we saved must not affect the store.
		progress["COM-11101"] = domain.StatusCompleted

		loaded, err := store.Load(ctx, "s2")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded["COM-11101"] != domain.StatusNotTaken {
			t.Error("store leaked a reference: saved snapshot was mutated by caller")
		}

		// Mutating a loaded snapshot must not affect later loads.
		loaded["COM-11101"] = domain.StatusInProgress
		again, err := store.Load(ctx, "s2")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if again["COM-11101"] != domain.StatusNotTaken {
			t.Error("store leaked a reference: loaded snapshot aliases stored state")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := store.Save(ctx, "s3", domain.Progress{"A": domain.StatusNotTaken}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Save(ctx, "s3", domain.Progress{"A": domain.StatusCompleted}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		loaded, err := store.Load(ctx, "s3")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded["A"] != domain.StatusCompleted {
			t.Errorf("expected overwrite to win, got %v", loaded["A"])
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for _, want := range []string{"s1", "s2", "s3"} {
			if !lookup[want] {
				t.Errorf("session %s missing from list", want)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "s1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}

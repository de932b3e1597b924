package memory_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/ports/tests"
)

func TestMemorySource_Contract(t *testing.T) {
	data := map[string][]byte{
		"cda": []byte(`{"COM-11101": {"name": "Algoritmos y Programas", "credits": 8, "semester": 1}}`),
		"eco": []byte(`{"ECO-11101": {"name": "Economía I", "credits": 6, "semester": 1}}`),
	}
	tests.PlanSourceContractTest(t, memory.NewSource(data), data)
}

func TestNewFromDocuments(t *testing.T) {
	src, err := memory.NewFromDocuments(map[string]plan.Document{
		"cda": {
			"COM-11101": {Name: "Algoritmos y Programas", Credits: 8, Semester: 1},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, format, err := src.Get("cda")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if format != plan.FormatJSON {
		t.Errorf("expected json format, got %q", format)
	}

	doc, err := plan.Parse(raw, format)
	if err != nil {
		t.Fatalf("round-trip parse failed: %v", err)
	}
	if doc["COM-11101"].Name != "Algoritmos y Programas" {
		t.Errorf("round-trip lost course name: %+v", doc["COM-11101"])
	}
}

func TestNewFromDocuments_MissingID(t *testing.T) {
	_, err := memory.NewFromDocuments(map[string]plan.Document{"": {}})
	if err == nil {
		t.Error("expected error for empty plan ID, got nil")
	}
}

package plan

import (
	"errors"
	"testing"
)

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
		"COM-11101": {
			"name": "Algoritmos y Programas",
			"credits": 6,
			"prerequisites": [],
			"corequisites": ["COM-11102"],
			"status": 1,
			"semester": 1
		},
		"COM-11102": {
			"name": "Laboratorio de Algoritmos",
			"credits": 2,
			"status": 0,
			"semester": 1
		}
	}`)

	doc, err := Parse(data, FormatJSON)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(doc))
	}

	cd := doc["COM-11101"]
	if cd.Name != "Algoritmos y Programas" || cd.Credits != 6 || cd.Status != 1 {
		t.Errorf("fields not decoded: %+v", cd)
	}
	if len(cd.Corequisites) != 1 || cd.Corequisites[0] != "COM-11102" {
		t.Errorf("corequisites not decoded: %v", cd.Corequisites)
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
MAT-14100:
  name: Cálculo I
  credits: 8
  status: 2
  semester: 1
MAT-14200:
  name: Cálculo II
  credits: 8
  prerequisites: [MAT-14100]
  semester: 2
`)

	doc, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc["MAT-14100"].Status != 2 {
		t.Errorf("status not decoded: %+v", doc["MAT-14100"])
	}
	if got := doc["MAT-14200"].Prerequisites; len(got) != 1 || got[0] != "MAT-14100" {
		t.Errorf("prerequisites not decoded: %v", got)
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	if _, err := Parse([]byte("{}"), Format("toml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"A": `), FormatJSON); err == nil {
		t.Error("expected error for malformed json")
	}
}

func TestDecode_CollectsAllErrors(t *testing.T) {
	raw := map[string]any{
		"A": map[string]any{"credits": -1, "status": 9},
		"B": map[string]any{"name": "B", "semester": -2},
	}

	_, err := Decode(raw)
	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		t.Fatalf("expected AggregateError, got %v", err)
	}

	// A: missing name, negative credits, bad status. B: negative semester.
	if len(aggr.Errors) != 4 {
		t.Errorf("expected 4 validation errors, got %d: %v", len(aggr.Errors), aggr.Errors)
	}
	if got := ValidationErrors(err); len(got) != 4 {
		t.Errorf("ValidationErrors should unwrap the aggregate, got %v", got)
	}
}

func TestDecode_NonObjectEntry(t *testing.T) {
	raw := map[string]any{"A": "not an object"}

	_, err := Decode(raw)
	if ValidationErrors(err) == nil {
		t.Fatalf("expected validation errors, got %v", err)
	}
}

func TestDecode_EmptyEdgeCodes(t *testing.T) {
	raw := map[string]any{
		"A": map[string]any{
			"name":          "A",
			"prerequisites": []any{""},
		},
	}

	_, err := Decode(raw)
	subs := ValidationErrors(err)
	if len(subs) != 1 {
		t.Fatalf("expected 1 error, got %v", subs)
	}
	var verr *ValidationError
	if !errors.As(subs[0], &verr) || verr.Field != "prerequisites[0]" {
		t.Errorf("wrong error: %v", subs[0])
	}
}

func TestRoundTrip_JSON(t *testing.T) {
	doc := Document{
		"A": {Name: "A", Credits: 6, Prerequisites: []string{"B"}, Status: 1, Semester: 2},
		"B": {Name: "B", Credits: 8, Status: 2, Semester: 1},
	}

	data, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	back, err := Parse(data, FormatJSON)
	if err != nil {
		t.Fatalf("Parse of encoded output failed: %v", err)
	}
	if back["A"].Status != 1 || back["B"].Credits != 8 {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if got := back["A"].Prerequisites; len(got) != 1 || got[0] != "B" {
		t.Errorf("round trip lost edges: %v", got)
	}
}

func TestValidationErrors_NonAggregate(t *testing.T) {
	if got := ValidationErrors(errors.New("plain")); got != nil {
		t.Errorf("expected nil for non-aggregate errors, got %v", got)
	}
}

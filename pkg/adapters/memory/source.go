// Package memory provides in-memory implementations of the Espalier
// ports, used by tests and by callers that assemble plans
// programmatically (e.g. the UI upload path).
package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/ports"
)

// Source implements ports.PlanSource using an in-memory map.
type Source struct {
	plans map[string]entry
}

type entry struct {
	data   []byte
	format plan.Format
}

var _ ports.PlanSource = (*Source)(nil)

// NewSource creates a Source from raw JSON plan bytes keyed by plan ID.
func NewSource(data map[string][]byte) *Source {
	plans := make(map[string]entry, len(data))
	for id, raw := range data {
		plans[id] = entry{data: raw, format: plan.FormatJSON}
	}
	return &Source{plans: plans}
}

// NewFromDocuments creates a Source from typed documents. This handles
// serialization automatically, improving DX for tests.
func NewFromDocuments(docs map[string]plan.Document) (*Source, error) {
	plans := make(map[string]entry, len(docs))
	for id, doc := range docs {
		if id == "" {
			return nil, fmt.Errorf("plan missing ID")
		}
		raw, err := plan.EncodeJSON(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode plan %s: %w", id, err)
		}
		plans[id] = entry{data: raw, format: plan.FormatJSON}
	}
	return &Source{plans: plans}, nil
}

// Add registers a raw plan under the given ID, replacing any previous one.
func (s *Source) Add(id string, data []byte, format plan.Format) {
	if s.plans == nil {
		s.plans = make(map[string]entry)
	}
	s.plans[id] = entry{data: data, format: format}
}

// Get retrieves the raw bytes and format of a plan by ID.
func (s *Source) Get(id string) ([]byte, plan.Format, error) {
	e, ok := s.plans[id]
	if !ok {
		return nil, "", fmt.Errorf("plan not found: %s", id)
	}
	return e.data, e.format, nil
}

// List returns all available plan IDs.
func (s *Source) List() ([]string, error) {
	ids := make([]string, 0, len(s.plans))
	for id := range s.plans {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}

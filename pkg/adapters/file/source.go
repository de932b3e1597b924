// Package file provides a filesystem-backed plan source: a directory of
// JSON/YAML plan documents, one file per study plan.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/ports"
)

// Source implements ports.PlanSource over a directory. Plan IDs are file
// stems: "planes/cda.json" is served as "cda".
type Source struct {
	Dir string
}

var _ ports.PlanSource = (*Source)(nil)

// New creates a Source for the given directory.
func New(dir string) *Source {
	return &Source{Dir: dir}
}

// Get reads the plan file for the given ID, trying the known extensions
// in order.
func (s *Source) Get(id string) ([]byte, plan.Format, error) {
	if strings.ContainsAny(id, `/\`) {
		return nil, "", fmt.Errorf("invalid plan id: %s", id)
	}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(s.Dir, id+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read plan %s: %w", id, err)
		}
		return data, formatFor(ext), nil
	}
	return nil, "", fmt.Errorf("plan not found: %s", id)
}

// List scans the directory for plan files and returns their stems, sorted.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan directory %s: %w", s.Dir, err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		switch ext {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ext)
		if !seen[stem] {
			seen[stem] = true
			ids = append(ids, stem)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func formatFor(ext string) plan.Format {
	if ext == ".yaml" || ext == ".yml" {
		return plan.FormatYAML
	}
	return plan.FormatJSON
}

package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Table maps a user-facing subject to the catalog foundation labels that
// belong to it. It is loaded once at startup and never mutated afterward, so
// it is safe to share across any number of concurrent requests.
type Table struct {
	foundations map[string][]string
	subjects    []string
}

// New builds a table from a subject -> foundations mapping. The input is
// copied; later changes to the caller's map do not leak in.
func New(mapping map[string][]string) (*Table, error) {
	if len(mapping) == 0 {
		return nil, fmt.Errorf("taxonomy mapping is empty")
	}
	foundations := make(map[string][]string, len(mapping))
	subjects := make([]string, 0, len(mapping))
	for subject, names := range mapping {
		if subject == "" {
			return nil, fmt.Errorf("taxonomy mapping contains an empty subject key")
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("subject %q maps to no foundations", subject)
		}
		foundations[subject] = append([]string(nil), names...)
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return &Table{foundations: foundations, subjects: subjects}, nil
}

// LoadFile reads a JSON object mapping subject name -> array of foundation
// names, the format produced alongside the catalog by the ingestion pipeline.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file %s: %w", path, err)
	}
	var mapping map[string][]string
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("parse taxonomy file %s: %w", path, err)
	}
	return New(mapping)
}

// FoundationsFor returns the foundation labels for a subject. Lookup is a
// case-sensitive exact match. The returned slice is a copy.
func (t *Table) FoundationsFor(subject string) ([]string, bool) {
	names, ok := t.foundations[subject]
	if !ok {
		return nil, false
	}
	return append([]string(nil), names...), true
}

// Subjects returns the sorted subject list, for caller display in
// invalid-subject errors. The returned slice is a copy.
func (t *Table) Subjects() []string {
	return append([]string(nil), t.subjects...)
}

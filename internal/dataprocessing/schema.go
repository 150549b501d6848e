package dataprocessing

import (
	"strings"

	"srdash/pkg/contracts/domain"
)

// SchemaMap is the result of reconciling one file's header row against the
// six required columns.
type SchemaMap struct {
	// Index maps a canonical column name to the source column position.
	Index map[string]int
	// Retained holds the canonical names present in the file, in the fixed
	// canonical column order.
	Retained []string
	// Dropped holds source headers with no case-insensitive match; the
	// columns behind them are discarded permanently.
	Dropped []string
	// Collisions holds canonical names that were matched by more than one
	// source header. The last matching source column wins, mirroring the
	// behavior the reporting team's historical exports rely on.
	Collisions []string
}

// ReconcileSchema matches raw column headers case-insensitively against the
// required schema. Headers are trimmed before comparison; unmatched columns
// are dropped. When two headers map to the same canonical column the later
// one overwrites the earlier mapping.
func ReconcileSchema(headers []string) SchemaMap {
	sm := SchemaMap{Index: make(map[string]int)}

	for i, raw := range headers {
		name := strings.TrimSpace(raw)
		matched := false
		for _, req := range domain.RequiredColumns() {
			if strings.EqualFold(name, req) {
				if _, seen := sm.Index[req]; seen {
					sm.Collisions = append(sm.Collisions, req)
				}
				sm.Index[req] = i
				matched = true
				break
			}
		}
		if !matched {
			sm.Dropped = append(sm.Dropped, name)
		}
	}

	for _, req := range domain.RequiredColumns() {
		if _, ok := sm.Index[req]; ok {
			sm.Retained = append(sm.Retained, req)
		}
	}

	return sm
}

// cell returns the value of the canonical column in a source row, or ""
// when the column is absent from the file or the row is too short.
func (sm SchemaMap) cell(row []string, canonical string) string {
	idx, ok := sm.Index[canonical]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

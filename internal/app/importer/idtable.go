package importer

import (
	"strings"

	"github.com/google/uuid"
)

// IDTable translates file-local import identifiers to store identifiers.
//
// One table lives for exactly one import run. Entity committers write to it
// and the hierarchy and relation transforms read from it; the fixed file
// order guarantees every write happens before the reads that need it, so
// the table is not safe for concurrent use and does no locking.
type IDTable struct {
	ids map[string]uuid.UUID
}

// NewIDTable returns an empty table.
func NewIDTable() *IDTable {
	return &IDTable{ids: make(map[string]uuid.UUID)}
}

// Set records importID → id unless importID is blank or already present.
// It reports whether the entry was written.
func (t *IDTable) Set(importID string, id uuid.UUID) bool {
	if strings.TrimSpace(importID) == "" {
		return false
	}
	if _, ok := t.ids[importID]; ok {
		return false
	}
	t.ids[importID] = id
	return true
}

// Lookup returns the store id for importID. An absent key is an unresolved
// reference, not an error.
func (t *IDTable) Lookup(importID string) (uuid.UUID, bool) {
	id, ok := t.ids[importID]
	return id, ok
}

// Has reports whether importID has been resolved.
func (t *IDTable) Has(importID string) bool {
	_, ok := t.ids[importID]
	return ok
}

// Len returns the number of resolved identifiers.
func (t *IDTable) Len() int { return len(t.ids) }

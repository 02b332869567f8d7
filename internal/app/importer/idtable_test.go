package importer

import (
	"testing"

	"github.com/google/uuid"
)

func TestIDTable_FirstWriteWins(t *testing.T) {
	t.Parallel()

	tbl := NewIDTable()
	first, second := uuid.New(), uuid.New()

	if !tbl.Set("key", first) {
		t.Fatal("first Set should write")
	}
	if tbl.Set("key", second) {
		t.Fatal("second Set should be ignored")
	}

	got, ok := tbl.Lookup("key")
	if !ok || got != first {
		t.Fatalf("Lookup = (%v, %v), want (%v, true)", got, ok, first)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tbl.Len())
	}
}

func TestIDTable_BlankKeysIgnored(t *testing.T) {
	t.Parallel()

	tbl := NewIDTable()
	if tbl.Set("", uuid.New()) || tbl.Set("  ", uuid.New()) {
		t.Fatal("blank keys must not be written")
	}
	if tbl.Has("") {
		t.Fatal("blank key must be unresolved")
	}
}

func TestIDTable_AbsentIsUnresolved(t *testing.T) {
	t.Parallel()

	tbl := NewIDTable()
	if _, ok := tbl.Lookup("9"); ok {
		t.Fatal("absent key should be unresolved")
	}
}

package sample

import (
	"context"
	"testing"

	"propertybook/internal/core"
)

func TestSampleSnapshotImportsCleanly(t *testing.T) {
	m := core.NewModel()
	res, err := m.ImportState(context.Background(), Snapshot())
	if err != nil {
		t.Fatalf("import sample: %v", err)
	}
	for _, v := range res.Violations {
		if v.Rule == "dangling_reference" {
			t.Fatalf("sample data must be referentially consistent: %+v", v)
		}
	}
	if got := len(m.Persons()); got != 6 {
		t.Fatalf("expected 6 persons, got %d", got)
	}
	next, _, err := m.AddSeller(context.Background(), core.Seller{Name: "New", Phone: "1"})
	if err != nil || next.ID != "S4" {
		t.Fatalf("expected S4 after sample sellers, got %v %v", next.ID, err)
	}
}

func TestSnapshotReturnsFreshSlices(t *testing.T) {
	a := Snapshot()
	a.Persons[0].Tags[0] = "changed"
	if b := Snapshot(); b.Persons[0].Tags[0] != "friends" {
		t.Fatalf("sample data shared between calls")
	}
}

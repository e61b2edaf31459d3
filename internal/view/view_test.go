package view

import (
	"cmp"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

type rec struct {
	name string
	n    int
}

func byN(a, b rec) int { return cmp.Compare(a.n, b.n) }

func TestNewViewIsUnfilteredUnsorted(t *testing.T) {
	backing := []rec{{"b", 2}, {"a", 1}}
	v := New(backing)
	if got := v.State(); got != (State{Filter: Unfiltered, Order: Unsorted}) {
		t.Fatalf("unexpected initial state %+v", got)
	}
	if !slices.Equal(v.Items(), backing) {
		t.Fatalf("expected insertion order, got %v", v.Items())
	}
}

func TestFilterThenSortDescending(t *testing.T) {
	backing := []rec{{"a", 3}, {"b", 1}, {"c", 2}, {"d", 5}}
	v := New(backing)
	v.SetFilter(func(r rec) bool { return r.n != 5 }, backing)
	v.SetSort(byN, false, backing)
	want := []rec{{"a", 3}, {"c", 2}, {"b", 1}}
	if !slices.Equal(v.Items(), want) {
		t.Fatalf("got %v want %v", v.Items(), want)
	}
	if got := v.State(); got != (State{Filter: Filtered, Order: SortedDesc}) {
		t.Fatalf("unexpected state %+v", got)
	}
	v.SetFilter(nil, backing)
	v.SetSort(nil, true, backing)
	if !slices.Equal(v.Items(), backing) {
		t.Fatalf("expected reset view to match backing")
	}
}

func TestSortIsStable(t *testing.T) {
	backing := []rec{{"x", 1}, {"y", 0}, {"z", 1}}
	got := Compute(backing, nil, byN, true)
	want := []rec{{"y", 0}, {"x", 1}, {"z", 1}}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	got = Compute(backing, nil, byN, false)
	want = []rec{{"x", 1}, {"z", 1}, {"y", 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("descending got %v want %v", got, want)
	}
}

func TestAtBounds(t *testing.T) {
	v := New([]rec{{"a", 1}})
	if _, ok := v.At(1); ok {
		t.Fatalf("expected out of range")
	}
	if _, ok := v.At(-1); ok {
		t.Fatalf("expected negative index rejected")
	}
	if r, ok := v.At(0); !ok || r.name != "a" {
		t.Fatalf("unexpected record %+v", r)
	}
	count := 0
	for range v.All() {
		count++
	}
	if count != 1 {
		t.Fatalf("expected one record from All, got %d", count)
	}
}

func TestViewMatchesComputeAfterEveryStep(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var backing []rec
		v := New(backing)
		var pred Predicate[rec]
		var comparator Comparator[rec]
		asc := true
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0:
				backing = append(backing, rec{name: rapid.StringMatching(`[a-c]`).Draw(t, "name"), n: rapid.IntRange(0, 9).Draw(t, "n")})
				v.Refresh(backing)
			case 1:
				if len(backing) > 0 {
					idx := rapid.IntRange(0, len(backing)-1).Draw(t, "idx")
					backing = slices.Delete(slices.Clone(backing), idx, idx+1)
					v.Refresh(backing)
				}
			case 2:
				limit := rapid.IntRange(0, 9).Draw(t, "limit")
				pred = func(r rec) bool { return r.n <= limit }
				v.SetFilter(pred, backing)
			case 3:
				comparator = byN
				asc = rapid.Bool().Draw(t, "asc")
				v.SetSort(comparator, asc, backing)
			case 4:
				pred = nil
				v.SetFilter(nil, backing)
			}
			if want := Compute(backing, pred, comparator, asc); !slices.Equal(v.Items(), want) {
				t.Fatalf("view %v diverged from %v", v.Items(), want)
			}
		}
	})
}

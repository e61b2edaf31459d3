// Package view derives the filtered and sorted sequences that renderers read.
// A View's content is always Compute(backing, predicate, comparator,
// ascending) for the last backing sequence it was refreshed with.
package view

import (
	"iter"
	"slices"
	"sync"
)

// Predicate selects visible records. A nil Predicate accepts everything.
type Predicate[E any] func(E) bool

// Comparator orders records like cmp.Compare. A nil Comparator keeps
// backing order.
type Comparator[E any] func(a, b E) int

// Filter state of a view.
type Filter string

const (
	Unfiltered Filter = "unfiltered"
	Filtered   Filter = "filtered"
)

// Order state of a view.
type Order string

const (
	Unsorted   Order = "unsorted"
	SortedAsc  Order = "sorted_asc"
	SortedDesc Order = "sorted_desc"
)

// State is the position of a view in its filter x order state machine.
type State struct {
	Filter Filter `json:"filter"`
	Order  Order  `json:"order"`
}

// Sequence is the read-only face of a View handed to renderers.
type Sequence[E any] interface {
	Len() int
	At(i int) (E, bool)
	Items() []E
	All() iter.Seq2[int, E]
	State() State
}

// View holds the active predicate and comparator for one collection and the
// sequence they produce.
type View[E any] struct {
	mu        sync.RWMutex
	predicate Predicate[E]
	cmp       Comparator[E]
	ascending bool
	items     []E
}

// New returns an unfiltered, unsorted view over backing.
func New[E any](backing []E) *View[E] {
	v := &View[E]{ascending: true}
	v.items = Compute(backing, nil, nil, true)
	return v
}

// Compute returns sort(filter(backing, p), c, ascending). The sort is
// stable so records that compare equal keep backing order.
func Compute[E any](backing []E, p Predicate[E], c Comparator[E], ascending bool) []E {
	out := make([]E, 0, len(backing))
	for _, e := range backing {
		if p == nil || p(e) {
			out = append(out, e)
		}
	}
	if c == nil {
		return out
	}
	if ascending {
		slices.SortStableFunc(out, c)
	} else {
		slices.SortStableFunc(out, func(a, b E) int { return c(b, a) })
	}
	return out
}

// Refresh recomputes the view from a new backing sequence.
func (v *View[E]) Refresh(backing []E) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = Compute(backing, v.predicate, v.cmp, v.ascending)
}

// SetFilter replaces the predicate and recomputes from backing.
func (v *View[E]) SetFilter(p Predicate[E], backing []E) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.predicate = p
	v.items = Compute(backing, v.predicate, v.cmp, v.ascending)
}

// SetSort replaces the comparator and direction and recomputes from backing.
func (v *View[E]) SetSort(c Comparator[E], ascending bool, backing []E) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cmp = c
	v.ascending = ascending
	v.items = Compute(backing, v.predicate, v.cmp, v.ascending)
}

// Len returns the number of visible records.
func (v *View[E]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

// At returns the record at visible index i.
func (v *View[E]) At(i int) (E, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if i < 0 || i >= len(v.items) {
		var zero E
		return zero, false
	}
	return v.items[i], true
}

// Items returns a copy of the visible records.
func (v *View[E]) Items() []E {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.items)
}

// All iterates over a consistent copy of the visible records.
func (v *View[E]) All() iter.Seq2[int, E] {
	items := v.Items()
	return slices.All(items)
}

// State reports the current filter and order state.
func (v *View[E]) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s := State{Filter: Unfiltered, Order: Unsorted}
	if v.predicate != nil {
		s.Filter = Filtered
	}
	switch {
	case v.cmp == nil:
	case v.ascending:
		s.Order = SortedAsc
	default:
		s.Order = SortedDesc
	}
	return s
}

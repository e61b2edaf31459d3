// Package collection provides the ordered, identity-unique record list used
// for every entity kind.
package collection

import (
	"slices"

	"propertybook/pkg/domain"
)

// Config describes how a Unique list compares and stamps its records.
type Config[E any] struct {
	// Entity names the kind in returned errors.
	Entity domain.EntityType
	// IsSame is the identity predicate. Required.
	IsSame func(a, b E) bool
	// Equal is full field equality, used for removal and replace targets. Required.
	Equal func(a, b E) bool
	// Stamp assigns an identifier on Add given the current records. Optional.
	Stamp func(e E, current []E) E
	// Clone deep-copies a record on the way in and out. Optional.
	Clone func(E) E
}

// Unique is an insertion-ordered list in which no two records are the same
// entity. It is not safe for concurrent use; the owning model serializes
// access.
type Unique[E any] struct {
	cfg   Config[E]
	items []E
}

// New returns an empty list using cfg.
func New[E any](cfg Config[E]) *Unique[E] {
	if cfg.IsSame == nil || cfg.Equal == nil {
		panic("collection: IsSame and Equal are required")
	}
	return &Unique[E]{cfg: cfg}
}

// Entity returns the configured entity type.
func (u *Unique[E]) Entity() domain.EntityType { return u.cfg.Entity }

// Len returns the number of stored records.
func (u *Unique[E]) Len() int { return len(u.items) }

// Contains reports whether some stored record is the same entity as e.
func (u *Unique[E]) Contains(e E) bool {
	return slices.ContainsFunc(u.items, func(x E) bool { return u.cfg.IsSame(x, e) })
}

// Find returns the first stored record satisfying match.
func (u *Unique[E]) Find(match func(E) bool) (E, bool) {
	i := slices.IndexFunc(u.items, match)
	if i < 0 {
		var zero E
		return zero, false
	}
	return u.clone(u.items[i]), true
}

// Add stamps e when the list allocates identifiers and appends it. The stored
// record is returned.
func (u *Unique[E]) Add(e E) (E, error) {
	if u.Contains(e) {
		var zero E
		return zero, domain.DuplicateEntityError{Entity: u.cfg.Entity}
	}
	if u.cfg.Stamp != nil {
		e = u.cfg.Stamp(e, u.items)
	}
	u.items = append(u.items, u.clone(e))
	return u.clone(e), nil
}

// SetAll replaces every record with list. The list is rejected as a whole
// if any two of its records are the same entity.
func (u *Unique[E]) SetAll(list []E) error {
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			if u.cfg.IsSame(list[i], list[j]) {
				return domain.DuplicateEntityError{Entity: u.cfg.Entity}
			}
		}
	}
	next := make([]E, len(list))
	for i, e := range list {
		next[i] = u.clone(e)
	}
	u.items = next
	return nil
}

// Replace swaps target for edited at target's position.
func (u *Unique[E]) Replace(target, edited E) error {
	i := u.indexOf(target)
	if i < 0 {
		return domain.EntityNotFoundError{Entity: u.cfg.Entity}
	}
	if !u.cfg.IsSame(target, edited) && u.Contains(edited) {
		return domain.DuplicateEntityError{Entity: u.cfg.Entity}
	}
	u.items[i] = u.clone(edited)
	return nil
}

// Remove deletes the record fully equal to e.
func (u *Unique[E]) Remove(e E) error {
	i := u.indexOf(e)
	if i < 0 {
		return domain.EntityNotFoundError{Entity: u.cfg.Entity}
	}
	u.items = slices.Delete(u.items, i, i+1)
	return nil
}

// Items returns a copy of the records in insertion order.
func (u *Unique[E]) Items() []E {
	out := make([]E, len(u.items))
	for i, e := range u.items {
		out[i] = u.clone(e)
	}
	return out
}

// Equal reports order-sensitive equality of both lists.
func (u *Unique[E]) Equal(other *Unique[E]) bool {
	if other == nil {
		return false
	}
	return slices.EqualFunc(u.items, other.items, u.cfg.Equal)
}

// Clone returns an independent copy sharing configuration.
func (u *Unique[E]) Clone() *Unique[E] {
	return &Unique[E]{cfg: u.cfg, items: u.Items()}
}

func (u *Unique[E]) indexOf(e E) int {
	return slices.IndexFunc(u.items, func(x E) bool { return u.cfg.Equal(x, e) })
}

func (u *Unique[E]) clone(e E) E {
	if u.cfg.Clone == nil {
		return e
	}
	return u.cfg.Clone(e)
}

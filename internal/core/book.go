package core

import (
	"context"

	"propertybook/internal/collection"
	"propertybook/internal/view"
	"propertybook/pkg/domain"
)

type bookSpec[E any] struct {
	entity EntityType
	list   func(*modelState) *collection.Unique[E]
	// validate runs against the candidate state before add and set.
	validate func(*modelState, E) error
	// keepID carries the target's identifier onto an edited record.
	keepID func(target, edited E) E
}

// Book is the per-kind handle onto the model: every verb the command layer
// needs for one entity kind. All mutations go through the owning Model's
// transaction boundary.
type Book[E any] struct {
	m    *Model
	spec bookSpec[E]
	view *view.View[E]
}

func newBook[E any](m *Model, spec bookSpec[E]) *Book[E] {
	return &Book[E]{m: m, spec: spec, view: view.New(spec.list(&m.state).Items())}
}

// Entity returns the kind managed by the book.
func (b *Book[E]) Entity() EntityType { return b.spec.entity }

// Add validates references, allocates an identifier when the kind carries
// one and appends e.
func (b *Book[E]) Add(ctx context.Context, e E) (E, Result, error) {
	var created E
	res, err := b.m.run(ctx, "add_"+string(b.spec.entity), func(tx *txn) error {
		if b.spec.validate != nil {
			if err := b.spec.validate(&tx.state, e); err != nil {
				return err
			}
		}
		stored, err := b.spec.list(&tx.state).Add(e)
		if err != nil {
			return err
		}
		created = stored
		tx.record(Change{Entity: b.spec.entity, Action: ActionCreate, After: stored})
		return nil
	})
	if err != nil {
		var zero E
		return zero, res, err
	}
	return created, res, nil
}

// Delete removes the record fully equal to e.
func (b *Book[E]) Delete(ctx context.Context, e E) (Result, error) {
	return b.m.run(ctx, "delete_"+string(b.spec.entity), func(tx *txn) error {
		if err := b.spec.list(&tx.state).Remove(e); err != nil {
			return err
		}
		tx.record(Change{Entity: b.spec.entity, Action: ActionDelete, Before: e})
		return nil
	})
}

// Set replaces target with edited in place. Allocated identifiers are
// stable across edits.
func (b *Book[E]) Set(ctx context.Context, target, edited E) (E, Result, error) {
	if b.spec.keepID != nil {
		edited = b.spec.keepID(target, edited)
	}
	res, err := b.m.run(ctx, "set_"+string(b.spec.entity), func(tx *txn) error {
		if b.spec.validate != nil {
			if err := b.spec.validate(&tx.state, edited); err != nil {
				return err
			}
		}
		if err := b.spec.list(&tx.state).Replace(target, edited); err != nil {
			return err
		}
		tx.record(Change{Entity: b.spec.entity, Action: ActionUpdate, Before: target, After: edited})
		return nil
	})
	if err != nil {
		var zero E
		return zero, res, err
	}
	return edited, res, nil
}

// SetAll replaces the whole collection, as loaders do at startup.
func (b *Book[E]) SetAll(ctx context.Context, list []E) (Result, error) {
	return b.m.run(ctx, "set_all_"+string(b.spec.entity), func(tx *txn) error {
		if err := b.spec.list(&tx.state).SetAll(list); err != nil {
			return err
		}
		tx.record(Change{Entity: b.spec.entity, Action: ActionReplaceAll})
		return nil
	})
}

// Has reports whether a record that is the same entity as e is stored.
func (b *Book[E]) Has(e E) bool {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.spec.list(&b.m.state).Contains(e)
}

// Items returns the backing records in insertion order.
func (b *Book[E]) Items() []E {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.spec.list(&b.m.state).Items()
}

// Filtered returns the live, read-only view.
func (b *Book[E]) Filtered() view.Sequence[E] { return b.view }

// UpdateFilter replaces the view predicate. A nil predicate shows all.
func (b *Book[E]) UpdateFilter(p view.Predicate[E]) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	b.view.SetFilter(p, b.spec.list(&b.m.state).Items())
	b.m.logger.Debug("view filter updated", "entity", b.spec.entity, "filtered", p != nil)
	b.m.events.publish(ViewEvent{Revision: b.m.revision, Entity: b.spec.entity, Reason: ReasonFilter, At: b.m.clock.Now()})
}

// UpdateSort replaces the view comparator and direction. A nil comparator
// restores insertion order.
func (b *Book[E]) UpdateSort(c view.Comparator[E], ascending bool) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	b.view.SetSort(c, ascending, b.spec.list(&b.m.state).Items())
	b.m.logger.Debug("view sort updated", "entity", b.spec.entity, "sorted", c != nil, "ascending", ascending)
	b.m.events.publish(ViewEvent{Revision: b.m.revision, Entity: b.spec.entity, Reason: ReasonSort, At: b.m.clock.Now()})
}

// Resolve maps a zero-based index into the visible view to the record it
// shows, so callers can mutate by identity rather than by position.
func (b *Book[E]) Resolve(index int) (E, error) {
	e, ok := b.view.At(index)
	if !ok {
		return e, domain.InvalidArgumentError{Field: "index", Reason: "out of range for the displayed " + string(b.spec.entity) + " list"}
	}
	return e, nil
}

// refreshView recomputes the view; callers hold m.mu.
func (b *Book[E]) refreshView() {
	b.view.Refresh(b.spec.list(&b.m.state).Items())
}

func validateBidReferences(s *modelState, bid Bid) error {
	if _, ok := s.findProperty(bid.PropertyID); !ok {
		return domain.ReferenceNotFoundError{Entity: EntityBid, Target: EntityProperty, ID: bid.PropertyID}
	}
	if _, ok := s.findBidder(bid.BidderID); !ok {
		return domain.ReferenceNotFoundError{Entity: EntityBid, Target: EntityBidder, ID: bid.BidderID}
	}
	return nil
}

func validateMeetingReferences(s *modelState, mt Meeting) error {
	if _, ok := s.findProperty(mt.PropertyID); !ok {
		return domain.ReferenceNotFoundError{Entity: EntityMeeting, Target: EntityProperty, ID: mt.PropertyID}
	}
	if _, ok := s.findBidder(mt.BidderID); !ok {
		return domain.ReferenceNotFoundError{Entity: EntityMeeting, Target: EntityBidder, ID: mt.BidderID}
	}
	return nil
}

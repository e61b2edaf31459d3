// Package core hosts the cross-collection Model: one unique collection and
// one live view per entity kind, mutated only through transactions that
// either commit completely or leave no trace.
package core

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"propertybook/internal/collection"
	"propertybook/pkg/domain"
)

// Model owns every collection, its views and the user preferences.
type Model struct {
	mu       sync.Mutex
	state    modelState
	revision uint64

	engine  *RulesEngine
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   Clock

	persons    *Book[Person]
	bidders    *Book[Bidder]
	sellers    *Book[Seller]
	properties *Book[Property]
	bids       *Book[Bid]
	meetings   *Book[Meeting]
	refresh    map[EntityType]func()

	events notifier
}

// NewModel returns an empty model using the default rules engine unless an
// option replaces it.
func NewModel(opts ...Option) *Model {
	m := &Model{
		state:   newModelState(),
		engine:  NewDefaultRulesEngine(),
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		clock:   defaultClock(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.persons = newBook(m, bookSpec[Person]{
		entity: EntityPerson,
		list:   func(s *modelState) *collection.Unique[Person] { return s.persons },
	})
	m.bidders = newBook(m, bookSpec[Bidder]{
		entity: EntityBidder,
		list:   func(s *modelState) *collection.Unique[Bidder] { return s.bidders },
		keepID: func(target, edited Bidder) Bidder { edited.ID = target.ID; return edited },
	})
	m.sellers = newBook(m, bookSpec[Seller]{
		entity: EntitySeller,
		list:   func(s *modelState) *collection.Unique[Seller] { return s.sellers },
		keepID: func(target, edited Seller) Seller { edited.ID = target.ID; return edited },
	})
	m.properties = newBook(m, bookSpec[Property]{
		entity: EntityProperty,
		list:   func(s *modelState) *collection.Unique[Property] { return s.properties },
		keepID: func(target, edited Property) Property { edited.ID = target.ID; return edited },
	})
	m.bids = newBook(m, bookSpec[Bid]{
		entity:   EntityBid,
		list:     func(s *modelState) *collection.Unique[Bid] { return s.bids },
		validate: validateBidReferences,
	})
	m.meetings = newBook(m, bookSpec[Meeting]{
		entity:   EntityMeeting,
		list:     func(s *modelState) *collection.Unique[Meeting] { return s.meetings },
		validate: validateMeetingReferences,
	})
	m.refresh = map[EntityType]func(){
		EntityPerson:   m.persons.refreshView,
		EntityBidder:   m.bidders.refreshView,
		EntitySeller:   m.sellers.refreshView,
		EntityProperty: m.properties.refreshView,
		EntityBid:      m.bids.refreshView,
		EntityMeeting:  m.meetings.refreshView,
	}
	return m
}

// NewInMemoryModel constructs a model with the given rules engine.
func NewInMemoryModel(engine *RulesEngine, opts ...Option) *Model {
	return NewModel(append([]Option{WithRulesEngine(engine)}, opts...)...)
}

// Revision counts committed transactions.
func (m *Model) Revision() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revision
}

type txn struct {
	id      string
	state   modelState
	changes []Change
	prefs   bool
}

func (tx *txn) record(change Change) {
	tx.changes = append(tx.changes, change)
}

func (tx *txn) touched() []EntityType {
	seen := make(map[EntityType]bool, len(tx.changes))
	var out []EntityType
	for _, c := range tx.changes {
		if !seen[c.Entity] {
			seen[c.Entity] = true
			out = append(out, c.Entity)
		}
	}
	return out
}

// run applies fn to a copy of the state, evaluates rules and commits the
// copy only when fn succeeds and no rule blocks.
func (m *Model) run(ctx context.Context, op string, fn func(tx *txn) error) (res Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	started := time.Now()
	ctx, span := m.tracer.Start(ctx, op)
	tx := &txn{id: uuid.NewString(), state: m.state.clone()}
	defer func() {
		m.metrics.Observe(ctx, op, err == nil, time.Since(started))
		span.End(err)
		if err != nil {
			m.logger.Debug("model operation rejected", "op", op, "tx_id", tx.id, "error", err)
		}
	}()

	if err = fn(tx); err != nil {
		return Result{}, err
	}
	if m.engine != nil {
		res, err = m.engine.Evaluate(ctx, stateView{state: &tx.state}, tx.changes)
		if err != nil {
			return Result{}, err
		}
		if res.HasBlocking() {
			return res, RuleViolationError{Result: res}
		}
	}

	m.state = tx.state
	m.revision++
	touched := tx.touched()
	for _, entity := range touched {
		m.refresh[entity]()
	}
	for _, v := range res.Violations {
		if v.Severity == SeverityWarn {
			m.logger.Warn("rule warning", "rule", v.Rule, "entity", v.Entity, "key", v.Key, "message", v.Message)
		} else {
			m.logger.Debug("rule finding", "rule", v.Rule, "entity", v.Entity, "key", v.Key, "message", v.Message)
		}
	}
	m.logger.Debug("model commit", "op", op, "tx_id", tx.id, "revision", m.revision, "changes", len(tx.changes))
	now := m.clock.Now()
	for _, entity := range touched {
		m.events.publish(ViewEvent{Revision: m.revision, Entity: entity, Reason: ReasonMutation, At: now})
	}
	if tx.prefs {
		m.events.publish(ViewEvent{Revision: m.revision, Reason: ReasonPreferences, At: now})
	}
	return res, nil
}

// ExportState returns a read-only copy of every collection and the
// preferences.
func (m *Model) ExportState() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.snapshot()
}

// ImportState replaces every collection and the preferences with snapshot.
// Nothing changes if any collection rejects its records.
func (m *Model) ImportState(ctx context.Context, snapshot Snapshot) (Result, error) {
	return m.run(ctx, "import_state", func(tx *txn) error {
		if err := distinctIDs(EntityBidder, snapshot.Bidders, func(b Bidder) ID { return b.ID }); err != nil {
			return err
		}
		if err := distinctIDs(EntitySeller, snapshot.Sellers, func(s Seller) ID { return s.ID }); err != nil {
			return err
		}
		if err := distinctIDs(EntityProperty, snapshot.Properties, func(p Property) ID { return p.ID }); err != nil {
			return err
		}
		if err := tx.state.persons.SetAll(snapshot.Persons); err != nil {
			return err
		}
		if err := tx.state.bidders.SetAll(snapshot.Bidders); err != nil {
			return err
		}
		if err := tx.state.sellers.SetAll(snapshot.Sellers); err != nil {
			return err
		}
		if err := tx.state.properties.SetAll(snapshot.Properties); err != nil {
			return err
		}
		if err := tx.state.bids.SetAll(snapshot.Bids); err != nil {
			return err
		}
		if err := tx.state.meetings.SetAll(snapshot.Meetings); err != nil {
			return err
		}
		tx.state.prefs = maps.Clone(snapshot.Preferences)
		if tx.state.prefs == nil {
			tx.state.prefs = map[string]string{}
		}
		tx.prefs = true
		for _, entity := range []EntityType{EntityPerson, EntityBidder, EntitySeller, EntityProperty, EntityBid, EntityMeeting} {
			tx.record(Change{Entity: entity, Action: ActionReplaceAll})
		}
		return nil
	})
}

// distinctIDs rejects two records whose identifiers name the same number,
// since references would resolve to whichever came first.
func distinctIDs[E any](entity EntityType, list []E, id func(E) ID) error {
	for i := range list {
		a := id(list[i])
		if a == "" {
			continue
		}
		for j := i + 1; j < len(list); j++ {
			if a.Matches(id(list[j])) {
				return domain.DuplicateEntityError{Entity: entity}
			}
		}
	}
	return nil
}

// Preference returns the stored value for key.
func (m *Model) Preference(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.state.prefs[key]
	return v, ok
}

// Preferences returns a copy of all preferences.
func (m *Model) Preferences() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.state.prefs)
}

// SetPreference stores value under key. An empty value removes the key.
func (m *Model) SetPreference(ctx context.Context, key, value string) error {
	_, err := m.run(ctx, "set_preference", func(tx *txn) error {
		if value == "" {
			delete(tx.state.prefs, key)
		} else {
			tx.state.prefs[key] = value
		}
		tx.prefs = true
		return nil
	})
	return err
}

package core

import (
	"maps"

	"propertybook/internal/collection"
	"propertybook/internal/ident"
	"propertybook/pkg/domain"
)

type modelState struct {
	persons    *collection.Unique[Person]
	bidders    *collection.Unique[Bidder]
	sellers    *collection.Unique[Seller]
	properties *collection.Unique[Property]
	bids       *collection.Unique[Bid]
	meetings   *collection.Unique[Meeting]
	prefs      map[string]string
}

func newModelState() modelState {
	return modelState{
		persons: collection.New(collection.Config[Person]{
			Entity: EntityPerson,
			IsSame: Person.IsSame,
			Equal:  Person.Equal,
			Clone:  Person.Clone,
		}),
		bidders: collection.New(collection.Config[Bidder]{
			Entity: EntityBidder,
			IsSame: Bidder.IsSame,
			Equal:  Bidder.Equal,
			Clone:  Bidder.Clone,
			Stamp: ident.Stamper(domain.PrefixBidder,
				func(b Bidder) ID { return b.ID },
				func(b Bidder, id ID) Bidder { b.ID = id; return b }),
		}),
		sellers: collection.New(collection.Config[Seller]{
			Entity: EntitySeller,
			IsSame: Seller.IsSame,
			Equal:  Seller.Equal,
			Clone:  Seller.Clone,
			Stamp: ident.Stamper(domain.PrefixSeller,
				func(s Seller) ID { return s.ID },
				func(s Seller, id ID) Seller { s.ID = id; return s }),
		}),
		properties: collection.New(collection.Config[Property]{
			Entity: EntityProperty,
			IsSame: Property.IsSame,
			Equal:  Property.Equal,
			Clone:  Property.Clone,
			Stamp: ident.Stamper(domain.PrefixProperty,
				func(p Property) ID { return p.ID },
				func(p Property, id ID) Property { p.ID = id; return p }),
		}),
		bids: collection.New(collection.Config[Bid]{
			Entity: EntityBid,
			IsSame: Bid.IsSame,
			Equal:  Bid.Equal,
		}),
		meetings: collection.New(collection.Config[Meeting]{
			Entity: EntityMeeting,
			IsSame: Meeting.IsSame,
			Equal:  Meeting.Equal,
		}),
		prefs: map[string]string{},
	}
}

func (s modelState) clone() modelState {
	return modelState{
		persons:    s.persons.Clone(),
		bidders:    s.bidders.Clone(),
		sellers:    s.sellers.Clone(),
		properties: s.properties.Clone(),
		bids:       s.bids.Clone(),
		meetings:   s.meetings.Clone(),
		prefs:      maps.Clone(s.prefs),
	}
}

func (s *modelState) snapshot() Snapshot {
	return Snapshot{
		Persons:     s.persons.Items(),
		Bidders:     s.bidders.Items(),
		Sellers:     s.sellers.Items(),
		Properties:  s.properties.Items(),
		Bids:        s.bids.Items(),
		Meetings:    s.meetings.Items(),
		Preferences: maps.Clone(s.prefs),
	}
}

func (s *modelState) findBidder(id ID) (Bidder, bool) {
	return s.bidders.Find(func(b Bidder) bool { return b.ID.Matches(id) })
}

func (s *modelState) findSeller(id ID) (Seller, bool) {
	return s.sellers.Find(func(x Seller) bool { return x.ID.Matches(id) })
}

func (s *modelState) findProperty(id ID) (Property, bool) {
	return s.properties.Find(func(p Property) bool { return p.ID.Matches(id) })
}

// stateView exposes a transaction's candidate state to rules.
type stateView struct {
	state *modelState
}

var _ domain.RuleView = stateView{}

func (v stateView) ListPersons() []Person              { return v.state.persons.Items() }
func (v stateView) ListBidders() []Bidder              { return v.state.bidders.Items() }
func (v stateView) ListSellers() []Seller              { return v.state.sellers.Items() }
func (v stateView) ListProperties() []Property         { return v.state.properties.Items() }
func (v stateView) ListBids() []Bid                    { return v.state.bids.Items() }
func (v stateView) ListMeetings() []Meeting            { return v.state.meetings.Items() }
func (v stateView) FindBidder(id ID) (Bidder, bool)     { return v.state.findBidder(id) }
func (v stateView) FindSeller(id ID) (Seller, bool)     { return v.state.findSeller(id) }
func (v stateView) FindProperty(id ID) (Property, bool) { return v.state.findProperty(id) }

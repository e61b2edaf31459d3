package core

import (
	"context"

	"propertybook/internal/view"
)

// PersonBook returns the handle used by generic commands for persons.
func (m *Model) PersonBook() *Book[Person] { return m.persons }

// AddPerson stores a person.
func (m *Model) AddPerson(ctx context.Context, p Person) (Person, Result, error) {
	return m.persons.Add(ctx, p)
}

// DeletePerson removes the person fully equal to p.
func (m *Model) DeletePerson(ctx context.Context, p Person) (Result, error) {
	return m.persons.Delete(ctx, p)
}

// SetPerson replaces target with edited at the same position.
func (m *Model) SetPerson(ctx context.Context, target, edited Person) (Person, Result, error) {
	return m.persons.Set(ctx, target, edited)
}

func (m *Model) HasPerson(p Person) bool { return m.persons.Has(p) }

// FilteredPersons returns the live person view.
func (m *Model) FilteredPersons() view.Sequence[Person] { return m.persons.Filtered() }

func (m *Model) UpdateFilteredPersons(pred view.Predicate[Person]) { m.persons.UpdateFilter(pred) }

func (m *Model) UpdateSortedPersons(cmp view.Comparator[Person], ascending bool) {
	m.persons.UpdateSort(cmp, ascending)
}

func (m *Model) ResolvePerson(index int) (Person, error) { return m.persons.Resolve(index) }

// SetPersons replaces every person; used by loaders.
func (m *Model) SetPersons(ctx context.Context, list []Person) (Result, error) {
	return m.persons.SetAll(ctx, list)
}

func (m *Model) Persons() []Person { return m.persons.Items() }

// BidderBook returns the handle used by generic commands for bidders.
func (m *Model) BidderBook() *Book[Bidder] { return m.bidders }

// AddBidder stores a bidder.
func (m *Model) AddBidder(ctx context.Context, b Bidder) (Bidder, Result, error) {
	return m.bidders.Add(ctx, b)
}

// DeleteBidder removes the bidder fully equal to b.
func (m *Model) DeleteBidder(ctx context.Context, b Bidder) (Result, error) {
	return m.bidders.Delete(ctx, b)
}

// SetBidder replaces target with edited at the same position.
func (m *Model) SetBidder(ctx context.Context, target, edited Bidder) (Bidder, Result, error) {
	return m.bidders.Set(ctx, target, edited)
}

func (m *Model) HasBidder(b Bidder) bool { return m.bidders.Has(b) }

// FilteredBidders returns the live bidder view.
func (m *Model) FilteredBidders() view.Sequence[Bidder] { return m.bidders.Filtered() }

func (m *Model) UpdateFilteredBidders(pred view.Predicate[Bidder]) { m.bidders.UpdateFilter(pred) }

func (m *Model) UpdateSortedBidders(cmp view.Comparator[Bidder], ascending bool) {
	m.bidders.UpdateSort(cmp, ascending)
}

func (m *Model) ResolveBidder(index int) (Bidder, error) { return m.bidders.Resolve(index) }

// SetBidders replaces every bidder; used by loaders.
func (m *Model) SetBidders(ctx context.Context, list []Bidder) (Result, error) {
	return m.bidders.SetAll(ctx, list)
}

func (m *Model) Bidders() []Bidder { return m.bidders.Items() }

// SellerBook returns the handle used by generic commands for sellers.
func (m *Model) SellerBook() *Book[Seller] { return m.sellers }

func (m *Model) AddSeller(ctx context.Context, s Seller) (Seller, Result, error) {
	return m.sellers.Add(ctx, s)
}

func (m *Model) DeleteSeller(ctx context.Context, s Seller) (Result, error) {
	return m.sellers.Delete(ctx, s)
}

func (m *Model) SetSeller(ctx context.Context, target, edited Seller) (Seller, Result, error) {
	return m.sellers.Set(ctx, target, edited)
}

func (m *Model) HasSeller(s Seller) bool { return m.sellers.Has(s) }

func (m *Model) FilteredSellers() view.Sequence[Seller] { return m.sellers.Filtered() }

func (m *Model) UpdateFilteredSellers(pred view.Predicate[Seller]) { m.sellers.UpdateFilter(pred) }

func (m *Model) UpdateSortedSellers(cmp view.Comparator[Seller], ascending bool) {
	m.sellers.UpdateSort(cmp, ascending)
}

func (m *Model) ResolveSeller(index int) (Seller, error) { return m.sellers.Resolve(index) }

func (m *Model) SetSellers(ctx context.Context, list []Seller) (Result, error) {
	return m.sellers.SetAll(ctx, list)
}

func (m *Model) Sellers() []Seller { return m.sellers.Items() }

// PropertyBook returns the handle used by generic commands for properties.
func (m *Model) PropertyBook() *Book[Property] { return m.properties }

func (m *Model) AddProperty(ctx context.Context, p Property) (Property, Result, error) {
	return m.properties.Add(ctx, p)
}

func (m *Model) DeleteProperty(ctx context.Context, p Property) (Result, error) {
	return m.properties.Delete(ctx, p)
}

func (m *Model) SetProperty(ctx context.Context, target, edited Property) (Property, Result, error) {
	return m.properties.Set(ctx, target, edited)
}

func (m *Model) HasProperty(p Property) bool { return m.properties.Has(p) }

func (m *Model) FilteredProperties() view.Sequence[Property] { return m.properties.Filtered() }

func (m *Model) UpdateFilteredProperties(pred view.Predicate[Property]) { m.properties.UpdateFilter(pred) }

func (m *Model) UpdateSortedProperties(cmp view.Comparator[Property], ascending bool) {
	m.properties.UpdateSort(cmp, ascending)
}

func (m *Model) ResolveProperty(index int) (Property, error) { return m.properties.Resolve(index) }

func (m *Model) SetProperties(ctx context.Context, list []Property) (Result, error) {
	return m.properties.SetAll(ctx, list)
}

func (m *Model) Properties() []Property { return m.properties.Items() }

// BidBook returns the handle used by generic commands for bids.
func (m *Model) BidBook() *Book[Bid] { return m.bids }

// AddBid stores a bid after checking its property and bidder exist.
func (m *Model) AddBid(ctx context.Context, bid Bid) (Bid, Result, error) {
	return m.bids.Add(ctx, bid)
}

// DeleteBid removes the bid fully equal to bid.
func (m *Model) DeleteBid(ctx context.Context, bid Bid) (Result, error) {
	return m.bids.Delete(ctx, bid)
}

// SetBid replaces target with edited at the same position.
func (m *Model) SetBid(ctx context.Context, target, edited Bid) (Bid, Result, error) {
	return m.bids.Set(ctx, target, edited)
}

func (m *Model) HasBid(bid Bid) bool { return m.bids.Has(bid) }

// FilteredBids returns the live bid view.
func (m *Model) FilteredBids() view.Sequence[Bid] { return m.bids.Filtered() }

func (m *Model) UpdateFilteredBids(pred view.Predicate[Bid]) { m.bids.UpdateFilter(pred) }

func (m *Model) UpdateSortedBids(cmp view.Comparator[Bid], ascending bool) {
	m.bids.UpdateSort(cmp, ascending)
}

func (m *Model) ResolveBid(index int) (Bid, error) { return m.bids.Resolve(index) }

// SetBids replaces every bid; used by loaders.
func (m *Model) SetBids(ctx context.Context, list []Bid) (Result, error) {
	return m.bids.SetAll(ctx, list)
}

func (m *Model) Bids() []Bid { return m.bids.Items() }

// MeetingBook returns the handle used by generic commands for meetings.
func (m *Model) MeetingBook() *Book[Meeting] { return m.meetings }

func (m *Model) AddMeeting(ctx context.Context, mt Meeting) (Meeting, Result, error) {
	return m.meetings.Add(ctx, mt)
}

func (m *Model) DeleteMeeting(ctx context.Context, mt Meeting) (Result, error) {
	return m.meetings.Delete(ctx, mt)
}

func (m *Model) SetMeeting(ctx context.Context, target, edited Meeting) (Meeting, Result, error) {
	return m.meetings.Set(ctx, target, edited)
}

func (m *Model) HasMeeting(mt Meeting) bool { return m.meetings.Has(mt) }

func (m *Model) FilteredMeetings() view.Sequence[Meeting] { return m.meetings.Filtered() }

func (m *Model) UpdateFilteredMeetings(pred view.Predicate[Meeting]) { m.meetings.UpdateFilter(pred) }

func (m *Model) UpdateSortedMeetings(cmp view.Comparator[Meeting], ascending bool) {
	m.meetings.UpdateSort(cmp, ascending)
}

func (m *Model) ResolveMeeting(index int) (Meeting, error) { return m.meetings.Resolve(index) }

func (m *Model) SetMeetings(ctx context.Context, list []Meeting) (Result, error) {
	return m.meetings.SetAll(ctx, list)
}

func (m *Model) Meetings() []Meeting { return m.meetings.Items() }

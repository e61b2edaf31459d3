// Package domain defines the records, identity rules, errors and rule
// evaluation primitives shared by every propertybook layer.
package domain

import (
	"slices"
	"strings"
)

// EntityType identifies the kind of record held by the model.
type EntityType string

// Supported entity types used in changes, errors and persistence buckets.
const (
	// EntityPerson identifies a legacy contact record.
	EntityPerson EntityType = "person"
	// EntityBidder identifies a prospective buyer.
	EntityBidder EntityType = "bidder"
	// EntitySeller identifies a property owner.
	EntitySeller   EntityType = "seller"
	EntityProperty EntityType = "property"
	EntityBid      EntityType = "bid"
	EntityMeeting  EntityType = "meeting"
)

// EntityTypes lists every kind in model order.
var EntityTypes = []EntityType{EntityPerson, EntityBidder, EntitySeller, EntityProperty, EntityBid, EntityMeeting}

// PropertyStatus enumerates listing states.
type PropertyStatus string

// Canonical property statuses.
const (
	PropertyAvailable  PropertyStatus = "available"
	PropertyUnderOffer PropertyStatus = "under_offer"
	PropertySold       PropertyStatus = "sold"
)

// Valid reports whether the status is one of the canonical values.
func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyAvailable, PropertyUnderOffer, PropertySold:
		return true
	}
	return false
}

// Person is a contact without an allocated identifier.
type Person struct {
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Tags  []string `json:"tags,omitempty"`
}

// IsSame reports whether both records name the same person.
func (p Person) IsSame(other Person) bool {
	return p.Name == other.Name
}

// Equal compares every field. Tags are compared as a set.
func (p Person) Equal(other Person) bool {
	return p.Name == other.Name && p.Phone == other.Phone && sameTags(p.Tags, other.Tags)
}

// Clone returns a copy that shares no slices with p.
func (p Person) Clone() Person {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Bidder is a prospective buyer with an allocated "B" identifier.
type Bidder struct {
	ID    ID       `json:"id"`
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Tags  []string `json:"tags,omitempty"`
}

// IsSame matches on name and phone; the identifier is ignored.
func (b Bidder) IsSame(other Bidder) bool {
	return b.Name == other.Name && b.Phone == other.Phone
}

func (b Bidder) Equal(other Bidder) bool {
	return b.ID == other.ID && b.Name == other.Name && b.Phone == other.Phone && sameTags(b.Tags, other.Tags)
}

func (b Bidder) Clone() Bidder {
	b.Tags = slices.Clone(b.Tags)
	return b
}

// Seller owns listed properties and carries an "S" identifier.
type Seller struct {
	ID    ID       `json:"id"`
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Tags  []string `json:"tags,omitempty"`
}

// IsSame matches on name and phone; the identifier is ignored.
func (s Seller) IsSame(other Seller) bool {
	return s.Name == other.Name && s.Phone == other.Phone
}

func (s Seller) Equal(other Seller) bool {
	return s.ID == other.ID && s.Name == other.Name && s.Phone == other.Phone && sameTags(s.Tags, other.Tags)
}

func (s Seller) Clone() Seller {
	s.Tags = slices.Clone(s.Tags)
	return s
}

// Property is a listing owned by a seller.
type Property struct {
	ID          ID             `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	SellerID    ID             `json:"seller_id"`
	AskingPrice int64          `json:"asking_price"`
	Status      PropertyStatus `json:"status"`
	Tags        []string       `json:"tags,omitempty"`
}

// IsSame matches on address, ignoring case and surrounding space.
func (p Property) IsSame(other Property) bool {
	return normalizeAddress(p.Address) == normalizeAddress(other.Address)
}

func (p Property) Equal(other Property) bool {
	return p.ID == other.ID &&
		p.Name == other.Name &&
		p.Address == other.Address &&
		p.SellerID == other.SellerID &&
		p.AskingPrice == other.AskingPrice &&
		p.Status == other.Status &&
		sameTags(p.Tags, other.Tags)
}

func (p Property) Clone() Property {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Bid is an offer by a bidder on a property. A bidder holds at most one
// standing bid per property.
type Bid struct {
	PropertyID ID    `json:"property_id"`
	BidderID   ID    `json:"bidder_id"`
	Amount     int64 `json:"amount"`
}

// IsSame matches on the (property, bidder) pair. "P01" and "P1" name the
// same property.
func (b Bid) IsSame(other Bid) bool {
	return b.PropertyID.Matches(other.PropertyID) && b.BidderID.Matches(other.BidderID)
}

func (b Bid) Equal(other Bid) bool { return b == other }

func (b Bid) Clone() Bid { return b }

func normalizeAddress(addr string) string {
	return strings.ToLower(strings.Join(strings.Fields(addr), " "))
}

// NormalizeTags trims, deduplicates and sorts tags. Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func sameTags(a, b []string) bool {
	return slices.Equal(NormalizeTags(a), NormalizeTags(b))
}

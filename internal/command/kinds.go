package command

import (
	"fmt"

	"propertybook/internal/core"
	"propertybook/internal/predicate"
	"propertybook/internal/view"
	"propertybook/pkg/domain"
)

// Kind describes how the generic commands address one entity kind.
type Kind[E any] struct {
	Entity domain.EntityType
	Plural string
	Book   func(*core.Model) *core.Book[E]
	// Describe renders a record for feedback messages.
	Describe func(E) string
	// Fields lists the text searched by find.
	Fields predicate.Fields[E]
	// Sorts maps sort keys to comparators; DefaultSort names the key used
	// when a request gives none.
	Sorts       map[string]view.Comparator[E]
	DefaultSort string
	Validate    func(E) error
	// ListMessage overrides the feedback of the list operation.
	ListMessage string
}

func (k Kind[E]) listMessage() string {
	if k.ListMessage != "" {
		return k.ListMessage
	}
	return fmt.Sprintf("Listed all %s", k.Plural)
}

func byName[E any](name func(E) string) view.Comparator[E] { return predicate.Name(name) }

func tagged(fields []string, tags []string) []string { return append(fields, tags...) }

// Persons addresses the contact list.
var Persons = Kind[domain.Person]{
	Entity:   domain.EntityPerson,
	Plural:   "persons",
	Book:     (*core.Model).PersonBook,
	Describe: func(p domain.Person) string { return fmt.Sprintf("%s; Phone: %s", p.Name, p.Phone) },
	Fields:   func(p domain.Person) []string { return tagged([]string{p.Name}, p.Tags) },
	Sorts: map[string]view.Comparator[domain.Person]{
		"name": byName(func(p domain.Person) string { return p.Name }),
	},
	DefaultSort: "name",
	Validate:    domain.Person.Validate,
}

// Bidders addresses prospective buyers.
var Bidders = Kind[domain.Bidder]{
	Entity: domain.EntityBidder,
	Plural: "bidders",
	Book:   (*core.Model).BidderBook,
	Describe: func(b domain.Bidder) string {
		return fmt.Sprintf("%s %s; Phone: %s", b.ID, b.Name, b.Phone)
	},
	Fields: func(b domain.Bidder) []string { return tagged([]string{b.Name, string(b.ID)}, b.Tags) },
	Sorts: map[string]view.Comparator[domain.Bidder]{
		"name": byName(func(b domain.Bidder) string { return b.Name }),
	},
	DefaultSort: "name",
	Validate:    domain.Bidder.Validate,
}

// Sellers addresses property owners.
var Sellers = Kind[domain.Seller]{
	Entity: domain.EntitySeller,
	Plural: "sellers",
	Book:   (*core.Model).SellerBook,
	Describe: func(s domain.Seller) string {
		return fmt.Sprintf("%s %s; Phone: %s", s.ID, s.Name, s.Phone)
	},
	Fields: func(s domain.Seller) []string { return tagged([]string{s.Name, string(s.ID)}, s.Tags) },
	Sorts: map[string]view.Comparator[domain.Seller]{
		"name": byName(func(s domain.Seller) string { return s.Name }),
	},
	DefaultSort: "name",
	Validate:    domain.Seller.Validate,
}

// Properties addresses listings.
var Properties = Kind[domain.Property]{
	Entity: domain.EntityProperty,
	Plural: "properties",
	Book:   (*core.Model).PropertyBook,
	Describe: func(p domain.Property) string {
		return fmt.Sprintf("%s %s; Address: %s; Seller: %s; Asking: %d", p.ID, p.Name, p.Address, p.SellerID, p.AskingPrice)
	},
	Fields: func(p domain.Property) []string {
		return tagged([]string{p.Name, p.Address, string(p.ID), string(p.Status)}, p.Tags)
	},
	Sorts: map[string]view.Comparator[domain.Property]{
		"name":  byName(func(p domain.Property) string { return p.Name }),
		"price": predicate.AskingPrice,
	},
	DefaultSort: "price",
	Validate:    domain.Property.Validate,
}

// Bids addresses offers on properties.
var Bids = Kind[domain.Bid]{
	Entity: domain.EntityBid,
	Plural: "bids",
	Book:   (*core.Model).BidBook,
	Describe: func(b domain.Bid) string {
		return fmt.Sprintf("Property: %s; Bidder: %s; Amount: %d", b.PropertyID, b.BidderID, b.Amount)
	},
	Fields: func(b domain.Bid) []string { return []string{string(b.PropertyID), string(b.BidderID)} },
	Sorts: map[string]view.Comparator[domain.Bid]{
		"amount": predicate.BidAmount,
	},
	DefaultSort: "amount",
	Validate:    domain.Bid.Validate,
}

// Meetings addresses viewings and admin slots.
var Meetings = Kind[domain.Meeting]{
	Entity: domain.EntityMeeting,
	Plural: "meetings",
	Book:   (*core.Model).MeetingBook,
	Describe: func(m domain.Meeting) string {
		kind := "Viewing"
		if m.Admin {
			kind = "Admin"
		}
		return fmt.Sprintf("%s; Property: %s; Bidder: %s; Venue: %s; %s %s-%s",
			kind, m.PropertyID, m.BidderID, m.Venue, m.Date, m.Start, m.End)
	},
	Fields: func(m domain.Meeting) []string {
		return []string{m.Venue, string(m.PropertyID), string(m.BidderID)}
	},
	Sorts: map[string]view.Comparator[domain.Meeting]{
		"date": predicate.MeetingTime,
	},
	DefaultSort: "date",
	Validate:    domain.Meeting.Validate,
	ListMessage: "Displaying full meeting list.",
}

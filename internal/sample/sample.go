// Package sample provides the starter data loaded into an empty store.
package sample

import (
	"time"

	"propertybook/pkg/domain"
)

func tags(t ...string) []string { return t }

// Persons returns the sample contact list.
func Persons() []domain.Person {
	return []domain.Person{
		{Name: "Alex Yeoh", Phone: "87438807", Tags: tags("friends")},
		{Name: "Bernice Yu", Phone: "99272758", Tags: tags("colleagues", "friends")},
		{Name: "Charlotte Oliveiro", Phone: "93210283", Tags: tags("neighbours")},
		{Name: "David Li", Phone: "91031282", Tags: tags("family")},
		{Name: "Irfan Ibrahim", Phone: "92492021", Tags: tags("classmates")},
		{Name: "Roy Balakrishnan", Phone: "92624417", Tags: tags("colleagues")},
	}
}

// Sellers returns the sample sellers S1 to S3.
func Sellers() []domain.Seller {
	return []domain.Seller{
		{ID: "S1", Name: "Charlotte Oliveiro", Phone: "93210283", Tags: tags("owner")},
		{ID: "S2", Name: "David Li", Phone: "91031282"},
		{ID: "S3", Name: "Roy Balakrishnan", Phone: "92624417", Tags: tags("investor")},
	}
}

// Bidders returns the sample bidders B1 to B3.
func Bidders() []domain.Bidder {
	return []domain.Bidder{
		{ID: "B1", Name: "Alex Yeoh", Phone: "87438807", Tags: tags("first home")},
		{ID: "B2", Name: "Bernice Yu", Phone: "99272758"},
		{ID: "B3", Name: "Irfan Ibrahim", Phone: "92492021", Tags: tags("cash buyer")},
	}
}

// Properties returns the sample listings P1 to P3.
func Properties() []domain.Property {
	return []domain.Property{
		{ID: "P1", Name: "Sunrise Villa", Address: "33 Pasir Ris Drive", SellerID: "S1", AskingPrice: 45000, Status: domain.PropertyAvailable, Tags: tags("landed")},
		{ID: "P2", Name: "Harbour Loft", Address: "12 Keppel Bay View", SellerID: "S2", AskingPrice: 120000, Status: domain.PropertyUnderOffer},
		{ID: "P3", Name: "Garden Flat", Address: "8 Bishan Street 13", SellerID: "S3", AskingPrice: 450000, Status: domain.PropertyAvailable, Tags: tags("hdb")},
	}
}

// Bids returns sample offers on the sample listings.
func Bids() []domain.Bid {
	return []domain.Bid{
		{PropertyID: "P1", BidderID: "B1", Amount: 45000},
		{PropertyID: "P1", BidderID: "B2", Amount: 45100},
		{PropertyID: "P2", BidderID: "B3", Amount: 123456},
		{PropertyID: "P3", BidderID: "B2", Amount: 450002},
	}
}

// Meetings returns sample viewings plus one admin slot.
func Meetings() []domain.Meeting {
	day := domain.DateOf(time.Date(2021, time.August, 3, 0, 0, 0, 0, time.UTC))
	return []domain.Meeting{
		{PropertyID: "P1", BidderID: "B1", Venue: "33 Pasir Ris Drive", Date: day, Start: domain.NewClock(12, 30), End: domain.NewClock(15, 30), Admin: true},
		{PropertyID: "P2", BidderID: "B3", Venue: "12 Keppel Bay View", Date: day, Start: domain.NewClock(16, 0), End: domain.NewClock(17, 0)},
		{PropertyID: "P3", BidderID: "B2", Venue: "8 Bishan Street 13", Date: domain.Date{Year: 2021, Month: time.August, Day: 5}, Start: domain.NewClock(10, 0), End: domain.NewClock(11, 0)},
	}
}

// Snapshot bundles every sample collection. Each call returns fresh slices.
func Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Persons:     Persons(),
		Bidders:     Bidders(),
		Sellers:     Sellers(),
		Properties:  Properties(),
		Bids:        Bids(),
		Meetings:    Meetings(),
		Preferences: map[string]string{},
	}
}

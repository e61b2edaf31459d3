package core

import (
	"context"
	"fmt"

	"propertybook/pkg/domain"
)

// NewDanglingReferenceRule reports records left pointing at a property,
// bidder or seller that a delete or bulk load removed. Bids and meetings are
// only checked on creation, so later deletes can orphan them.
func NewDanglingReferenceRule() domain.Rule {
	return danglingReferenceRule{}
}

type danglingReferenceRule struct{}

func (danglingReferenceRule) Name() string { return "dangling_reference" }

func (r danglingReferenceRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	severity, relevant := domain.Severity(""), false
	for _, c := range changes {
		switch {
		case c.Action == domain.ActionReplaceAll:
			relevant = true
			if severity == "" {
				severity = domain.SeverityLog
			}
		case c.Action == domain.ActionDelete && (c.Entity == EntityProperty || c.Entity == EntityBidder || c.Entity == EntitySeller):
			relevant, severity = true, domain.SeverityWarn
		}
	}
	if !relevant {
		return domain.Result{}, nil
	}

	res := domain.Result{}
	add := func(entity EntityType, key string, target EntityType, id ID) {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: severity,
			Message:  fmt.Sprintf("%s %s references missing %s %s", entity, key, target, id),
			Entity:   entity,
			Key:      key,
		})
	}
	for _, p := range view.ListProperties() {
		if _, ok := view.FindSeller(p.SellerID); !ok {
			add(EntityProperty, string(p.ID), EntitySeller, p.SellerID)
		}
	}
	for _, b := range view.ListBids() {
		key := fmt.Sprintf("%s/%s", b.PropertyID, b.BidderID)
		if _, ok := view.FindProperty(b.PropertyID); !ok {
			add(EntityBid, key, EntityProperty, b.PropertyID)
		}
		if _, ok := view.FindBidder(b.BidderID); !ok {
			add(EntityBid, key, EntityBidder, b.BidderID)
		}
	}
	for _, m := range view.ListMeetings() {
		key := fmt.Sprintf("%s/%s@%s %s", m.PropertyID, m.BidderID, m.Date, m.Start)
		if _, ok := view.FindProperty(m.PropertyID); !ok {
			add(EntityMeeting, key, EntityProperty, m.PropertyID)
		}
		if _, ok := view.FindBidder(m.BidderID); !ok {
			add(EntityMeeting, key, EntityBidder, m.BidderID)
		}
	}
	return res, nil
}

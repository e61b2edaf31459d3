package core

import (
	"context"
	"fmt"

	"propertybook/pkg/domain"
)

// NewBidBelowAskingRule logs bids placed under the property's asking price.
func NewBidBelowAskingRule() domain.Rule {
	return bidBelowAskingRule{}
}

type bidBelowAskingRule struct{}

func (bidBelowAskingRule) Name() string { return "bid_below_asking" }

func (r bidBelowAskingRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, c := range changes {
		if c.Entity != EntityBid || (c.Action != domain.ActionCreate && c.Action != domain.ActionUpdate) {
			continue
		}
		bid, ok := c.After.(Bid)
		if !ok {
			continue
		}
		property, ok := view.FindProperty(bid.PropertyID)
		if !ok || bid.Amount >= property.AskingPrice {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityLog,
			Message:  fmt.Sprintf("bid of %d by %s is below asking price %d for %s", bid.Amount, bid.BidderID, property.AskingPrice, property.ID),
			Entity:   EntityBid,
			Key:      fmt.Sprintf("%s/%s", bid.PropertyID, bid.BidderID),
		})
	}
	return res, nil
}

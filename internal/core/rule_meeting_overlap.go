package core

import (
	"context"
	"fmt"

	"propertybook/pkg/domain"
)

// NewMeetingOverlapRule warns when a created or edited meeting double-books
// its bidder. Admin meetings are internal and never conflict.
func NewMeetingOverlapRule() domain.Rule {
	return meetingOverlapRule{}
}

type meetingOverlapRule struct{}

func (meetingOverlapRule) Name() string { return "meeting_overlap" }

func (r meetingOverlapRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	var meetings []Meeting
	for _, c := range changes {
		if c.Entity != EntityMeeting || (c.Action != domain.ActionCreate && c.Action != domain.ActionUpdate) {
			continue
		}
		changed, ok := c.After.(Meeting)
		if !ok || changed.Admin {
			continue
		}
		if meetings == nil {
			meetings = view.ListMeetings()
		}
		for _, other := range meetings {
			if other.Admin || other.IsSame(changed) || !other.BidderID.Matches(changed.BidderID) {
				continue
			}
			if changed.Overlaps(other) {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     r.Name(),
					Severity: domain.SeverityWarn,
					Message: fmt.Sprintf("bidder %s already has a meeting at %s on %s %s-%s",
						changed.BidderID, other.Venue, other.Date, other.Start, other.End),
					Entity: EntityMeeting,
					Key:    fmt.Sprintf("%s/%s@%s %s", changed.PropertyID, changed.BidderID, changed.Date, changed.Start),
				})
			}
		}
	}
	return res, nil
}

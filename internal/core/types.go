package core

import "propertybook/pkg/domain"

type (
	EntityType         = domain.EntityType
	ID                 = domain.ID
	Severity           = domain.Severity
	Person             = domain.Person
	Bidder             = domain.Bidder
	Seller             = domain.Seller
	Property           = domain.Property
	Bid                = domain.Bid
	Meeting            = domain.Meeting
	Snapshot           = domain.Snapshot
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RulesEngine        = domain.RulesEngine
	Rule               = domain.Rule
	RuleView           = domain.RuleView
	RuleViolationError = domain.RuleViolationError
)

const (
	EntityPerson   = domain.EntityPerson
	EntityBidder   = domain.EntityBidder
	EntitySeller   = domain.EntitySeller
	EntityProperty = domain.EntityProperty
	EntityBid      = domain.EntityBid
	EntityMeeting  = domain.EntityMeeting
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate     = domain.ActionCreate
	ActionUpdate     = domain.ActionUpdate
	ActionDelete     = domain.ActionDelete
	ActionReplaceAll = domain.ActionReplaceAll
)

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine { return domain.NewRulesEngine() }

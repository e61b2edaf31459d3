package core

// NewDefaultRulesEngine returns an engine with the advisory rules every
// model runs before commit.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewDanglingReferenceRule())
	engine.Register(NewMeetingOverlapRule())
	engine.Register(NewBidBelowAskingRule())
	return engine
}

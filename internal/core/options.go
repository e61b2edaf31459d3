package core

import "time"

// Option configures a Model.
type Option func(*Model)

// WithRulesEngine replaces the rules engine evaluated before every commit.
// A nil engine disables rule evaluation.
func WithRulesEngine(engine *RulesEngine) Option {
	return func(m *Model) { m.engine = engine }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(logger Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetricsRecorder sets the metrics recorder.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(m *Model) {
		if rec != nil {
			m.metrics = rec
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer Tracer) Option {
	return func(m *Model) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// WithClock sets the clock used to timestamp view events.
func WithClock(clock Clock) Option {
	return func(m *Model) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func defaultClock() Clock {
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}

package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"propertybook/pkg/domain"
)

type observation struct {
	op      string
	success bool
}

type captureMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (c *captureMetrics) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.obs = append(c.obs, observation{op: op, success: success})
}

type captureTracer struct {
	mu    sync.Mutex
	names []string
	errs  []error
}

type captureSpan struct {
	t *captureTracer
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, op)
	return ctx, captureSpan{t: c}
}

func (s captureSpan) End(err error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	s.t.errs = append(s.t.errs, err)
}

type captureLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
}

func (l *captureLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, msg)
}
func (l *captureLogger) Info(string, ...any) {}
func (l *captureLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *captureLogger) Error(string, ...any) {}

func TestModelRecordsMetricsAndSpans(t *testing.T) {
	ctx := context.Background()
	metrics := &captureMetrics{}
	tracer := &captureTracer{}
	m := NewModel(WithMetricsRecorder(metrics), WithTracer(tracer))

	m.AddSeller(ctx, Seller{Name: "Sam", Phone: "1"})
	m.AddSeller(ctx, Seller{Name: "Sam", Phone: "1"})

	if len(metrics.obs) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(metrics.obs))
	}
	if metrics.obs[0] != (observation{op: "add_seller", success: true}) {
		t.Fatalf("unexpected first observation %+v", metrics.obs[0])
	}
	if metrics.obs[1].success {
		t.Fatalf("duplicate add must be recorded as failure")
	}
	if len(tracer.names) != 2 || tracer.names[0] != "add_seller" {
		t.Fatalf("unexpected spans %v", tracer.names)
	}
	if tracer.errs[0] != nil || !errors.Is(tracer.errs[1], domain.ErrDuplicateEntity) {
		t.Fatalf("unexpected span errors %v", tracer.errs)
	}
}

func TestModelLogsWarningsAndRejections(t *testing.T) {
	ctx := context.Background()
	logger := &captureLogger{}
	m := NewModel(WithLogger(logger))
	m.AddSeller(ctx, Seller{Name: "Sam", Phone: "1"})
	m.AddBidder(ctx, Bidder{Name: "Amy", Phone: "2"})
	m.AddProperty(ctx, Property{Name: "Loft", Address: "1 Main", SellerID: "S1", AskingPrice: 100})
	m.AddBid(ctx, Bid{PropertyID: "P1", BidderID: "B1", Amount: 100})
	m.DeleteBidder(ctx, m.Bidders()[0])

	if len(logger.warns) != 1 {
		t.Fatalf("expected one dangling bid warning, got %v", logger.warns)
	}

	m.AddBid(ctx, Bid{PropertyID: "P7", BidderID: "B1", Amount: 1})
	last := logger.debug[len(logger.debug)-1]
	if last != "model operation rejected" {
		t.Fatalf("expected rejection logged, got %q", last)
	}
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	m := NewModel(WithLogger(nil), WithMetricsRecorder(nil), WithTracer(nil), WithClock(nil))
	if _, ok := m.logger.(noopLogger); !ok {
		t.Fatalf("expected noop logger")
	}
	if _, ok := m.metrics.(noopMetrics); !ok {
		t.Fatalf("expected noop metrics")
	}
	if _, ok := m.tracer.(noopTracer); !ok {
		t.Fatalf("expected noop tracer")
	}
	if m.clock.Now().Location() != time.UTC {
		t.Fatalf("expected UTC default clock")
	}
	noopLogger{}.Info("ignored")
	noopLogger{}.Error("ignored")
}

// Package otel adapts an OpenTelemetry tracer to the model's Tracer hook.
package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"propertybook/internal/core"
)

// ScopeName identifies spans emitted by the model.
const ScopeName = "propertybook/core"

// Tracer implements core.Tracer.
type Tracer struct {
	tracer trace.Tracer
}

// New wraps provider, or the global provider when nil.
func New(provider trace.TracerProvider) *Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: provider.Tracer(ScopeName)}
}

func (t *Tracer) Start(ctx context.Context, operation string) (context.Context, core.TraceSpan) {
	ctx, span := t.tracer.Start(ctx, "model."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("model.operation", operation)),
	)
	return ctx, spanAdapter{span: span}
}

type spanAdapter struct {
	span trace.Span
}

func (s spanAdapter) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

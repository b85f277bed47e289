package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NewTracer returns a tracer from the global OpenTelemetry provider. Set
// the provider with otel.SetTracerProvider before serving; without one the
// spans are discarded.
func NewTracer(name string) trace.Tracer {
	if name == "" {
		name = "starbug"
	}
	return otel.Tracer(name)
}

func noopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("")
}

// startSpan opens a server span with the given attributes.
func (s *Server) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

// endSpan records err, if any, and ends span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Copyright © 2025 The javals authors

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "javals"

// NewOpenTelemetryAnnotator annotates queries with OpenTelemetry
// spans from the globally registered tracer provider.
func NewOpenTelemetryAnnotator() Annotator {
	return &otelAnnotator{tracer: otel.GetTracerProvider().Tracer(tracerName)}
}

type otelAnnotator struct {
	tracer trace.Tracer
}

func (a *otelAnnotator) Start(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := a.tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("javals.stage", name)))
	return ctx, func() { span.End() }
}

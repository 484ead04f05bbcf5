// Copyright © 2025 The javals authors

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InstallOpenTelemetry registers a default SDK tracer provider and
// returns a shutdown function flushing any pending spans. Exporters
// are attached by the embedding environment through the usual OTEL
// environment configuration; without one the provider is inert.
func InstallOpenTelemetry() func() {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return func() {
		_ = tp.Shutdown(context.Background())
	}
}

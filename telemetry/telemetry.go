// Copyright © 2025 The javals authors

// Package telemetry annotates query execution with trace spans. Two
// backends are provided, OpenTelemetry and OpenCensus, behind one
// small interface so the server can be wired to whichever collector
// the embedding environment uses.
package telemetry

import "context"

// Annotator opens a span around one unit of query work.
type Annotator interface {
	// Start opens a span named after the query stage and returns the
	// derived context and a function closing the span.
	Start(ctx context.Context, name string) (context.Context, func())
}

// Nop returns an annotator that records nothing.
func Nop() Annotator {
	return nopAnnotator{}
}

type nopAnnotator struct{}

func (nopAnnotator) Start(ctx context.Context, _ string) (context.Context, func()) {
	return ctx, func() {}
}

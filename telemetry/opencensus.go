// Copyright © 2025 The javals authors

package telemetry

import (
	"context"

	"go.opencensus.io/trace"
)

// NewOpenCensusAnnotator annotates queries with OpenCensus spans, for
// embedders still exporting through an OpenCensus pipeline.
func NewOpenCensusAnnotator() Annotator {
	return ocAnnotator{}
}

type ocAnnotator struct{}

func (ocAnnotator) Start(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := trace.StartSpan(ctx, name)
	return ctx, func() { span.End() }
}

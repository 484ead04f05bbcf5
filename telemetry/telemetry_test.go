// Copyright © 2025 The javals authors

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotators(t *testing.T) {
	for name, a := range map[string]Annotator{
		"nop":           Nop(),
		"opentelemetry": NewOpenTelemetryAnnotator(),
		"opencensus":    NewOpenCensusAnnotator(),
	} {
		t.Run(name, func(t *testing.T) {
			ctx, end := a.Start(context.Background(), "complete")
			assert.NotNil(t, ctx)
			end()
		})
	}
}

// The noop package provides a tracer that does nothing. It is the default
// when no tracing backend is configured.
package noop

import (
	"context"

	"github.com/hybridx-exchange/graph-node/trace/tracer"
)

// Tracer is a no-op implementation of tracer.Tracer.
type Tracer struct{}

func (Tracer) TraceValidation(ctx context.Context, deployment string) (context.Context, tracer.ValidationFinishFunc) {
	return ctx, func([]error) {}
}

func (Tracer) TraceSchemaImport(ctx context.Context, subgraph string) (context.Context, tracer.ImportFinishFunc) {
	return ctx, func(error) {}
}

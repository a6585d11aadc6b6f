// The opentracing package reports schema-processing spans through the
// OpenTracing API.
package opentracing

import (
	"context"
	"fmt"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/hybridx-exchange/graph-node/trace/tracer"
)

// Tracer implements tracer.Tracer and creates OpenTracing spans.
type Tracer struct{}

func (Tracer) TraceValidation(ctx context.Context, deployment string) (context.Context, tracer.ValidationFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "Validate schema")
	span.SetTag("schema.deployment", deployment)

	return spanCtx, func(errs []error) {
		if len(errs) > 0 {
			msg := errs[0].Error()
			if len(errs) > 1 {
				msg += fmt.Sprintf(" (and %d more errors)", len(errs)-1)
			}
			ext.Error.Set(span, true)
			span.SetTag("schema.error", msg)
		}
		span.Finish()
	}
}

func (Tracer) TraceSchemaImport(ctx context.Context, subgraph string) (context.Context, tracer.ImportFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "Resolve schema import")
	span.SetTag("schema.subgraph", subgraph)

	return spanCtx, func(err error) {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("schema.error", err.Error())
		}
		span.Finish()
	}
}

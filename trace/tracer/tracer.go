// The tracer package defines the tracing hooks invoked around schema
// processing: validating a deployment's schema and resolving its imports.
package tracer

import "context"

type ValidationFinishFunc = func([]error)
type ImportFinishFunc = func(error)

// Tracer is implemented by tracing backends. Both hooks return a finish
// function that the caller invokes with the errors (if any) once the traced
// operation completes.
type Tracer interface {
	// TraceValidation is called before a deployment's schema is validated.
	TraceValidation(ctx context.Context, deployment string) (context.Context, ValidationFinishFunc)

	// TraceSchemaImport is called before a foreign subgraph's schema is
	// looked up during import resolution.
	TraceSchemaImport(ctx context.Context, subgraph string) (context.Context, ImportFinishFunc)
}

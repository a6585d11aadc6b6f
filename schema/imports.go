package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hybridx-exchange/graph-node/trace/noop"
	"github.com/hybridx-exchange/graph-node/trace/tracer"
)

// ImportedType is a single type from an @import directive. It corresponds
// either to a string "Thing" or an object {name: "Thing", as: "Stuff"}; the
// first form is equivalent to {name: "Thing", as: "Thing"}.
type ImportedType struct {
	// Name is the type's name in the schema it is imported from.
	Name string
	// Alias is the local name, a copy of Name if the user gave no alias.
	Alias string
	// Explicit reports whether the alias was given by the user.
	Explicit bool
}

// ParseImportedType reads one entry of an @import directive's types list.
// Any shape other than the two documented on ImportedType is rejected.
func ParseImportedType(value *ast.Value) (ImportedType, bool) {
	switch value.Kind {
	case ast.StringValue:
		return ImportedType{Name: value.Raw, Alias: value.Raw}, true
	case ast.ObjectValue:
		name := value.Children.ForName("name")
		alias := value.Children.ForName("as")
		if name == nil || name.Kind != ast.StringValue || alias == nil || alias.Kind != ast.StringValue {
			return ImportedType{}, false
		}
		return ImportedType{Name: name.Raw, Alias: alias.Raw, Explicit: true}, true
	default:
		return ImportedType{}, false
	}
}

// SchemaReference identifies the foreign subgraph deployment an @import
// directive imports types from.
type SchemaReference struct {
	Subgraph DeploymentID
}

func (r SchemaReference) String() string { return r.Subgraph.String() }

// ParseSchemaReference reads the from argument of an @import directive: an
// object with a string id field. Any other shape is rejected.
func ParseSchemaReference(value *ast.Value) (SchemaReference, bool) {
	if value.Kind != ast.ObjectValue {
		return SchemaReference{}, false
	}
	id := value.Children.ForName("id")
	if id == nil || id.Kind != ast.StringValue {
		return SchemaReference{}, false
	}
	return SchemaReference{Subgraph: DeploymentID(id.Raw)}, true
}

// Import is one @import directive: the imported types and the subgraph they
// come from.
type Import struct {
	Types []ImportedType
	From  SchemaReference
}

// Imports returns the schema's @import directives in declaration order.
// Malformed entries were rejected during validation and are skipped here.
func (s *Schema) Imports() []Import {
	schemaType := s.Document.Definitions.ForName(SchemaTypeName)
	if schemaType == nil {
		return nil
	}
	var imports []Import
	for _, dir := range schemaType.Directives.ForNames(importDirectiveName) {
		from := dir.Arguments.ForName("from")
		if from == nil {
			continue
		}
		ref, ok := ParseSchemaReference(from.Value)
		if !ok {
			continue
		}
		imp := Import{From: ref}
		if types := dir.Arguments.ForName("types"); types != nil {
			for _, child := range types.Value.Children {
				if imported, ok := ParseImportedType(child.Value); ok {
					imp.Types = append(imp.Types, imported)
				}
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

// Sentinel errors for SubgraphStore implementations. The import resolver
// maps them to the two distinct ImportError kinds.
var (
	// ErrSchemaNotFound: no schema is registered for the deployment id.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrSubgraphNotDeployed: the id is known but the deployment was never
	// indexed.
	ErrSubgraphNotDeployed = errors.New("subgraph not deployed")
)

// SubgraphStore is the narrow capability the import resolver needs from the
// store: looking up the input schema of a deployed subgraph. It is injected
// so the resolver can be exercised against a fake.
type SubgraphStore interface {
	InputSchema(ctx context.Context, id DeploymentID) (*Schema, error)
}

// ImportErrorKind distinguishes the ways resolving a schema import fails.
type ImportErrorKind int

const (
	// ImportedSchemaNotFound: no schema is registered for the referenced
	// deployment.
	ImportedSchemaNotFound ImportErrorKind = iota
	// ImportedSubgraphNotFound: the deployment is known but was never
	// indexed.
	ImportedSubgraphNotFound
	// ImportCycle: the import graph reaches back to one of its importers.
	ImportCycle
)

// ImportError reports a failed schema import, naming the reference that
// could not be resolved.
type ImportError struct {
	Kind      ImportErrorKind
	Reference SchemaReference
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case ImportedSchemaNotFound:
		return fmt.Sprintf("schema for imported subgraph %q was not found", e.Reference)
	case ImportedSubgraphNotFound:
		return fmt.Sprintf("subgraph for imported schema %q is not deployed", e.Reference)
	case ImportCycle:
		return fmt.Sprintf("import cycle through subgraph %q", e.Reference)
	default:
		return fmt.Sprintf("importing schema %q failed", e.Reference)
	}
}

// Resolve looks up the referenced deployment's schema through the store
// capability. The store's sentinel errors are mapped to the matching
// ImportError kind; they are never collapsed into one generic failure.
func (r SchemaReference) Resolve(ctx context.Context, store SubgraphStore) (*Schema, error) {
	s, err := store.InputSchema(ctx, r.Subgraph)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, ErrSubgraphNotDeployed):
		return nil, &ImportError{Kind: ImportedSubgraphNotFound, Reference: r}
	case errors.Is(err, ErrSchemaNotFound):
		return nil, &ImportError{Kind: ImportedSchemaNotFound, Reference: r}
	default:
		return nil, fmt.Errorf("importing schema %q: %w", r, err)
	}
}

// ResolveOption configures ResolveImports.
type ResolveOption func(*importResolver)

// WithLogger sets the logger used while resolving imports.
func WithLogger(logger *zap.Logger) ResolveOption {
	return func(r *importResolver) { r.logger = logger }
}

// WithTracer sets the tracer reporting one span per schema lookup.
func WithTracer(t tracer.Tracer) ResolveOption {
	return func(r *importResolver) { r.tracer = t }
}

type importResolver struct {
	store  SubgraphStore
	logger *zap.Logger
	tracer tracer.Tracer

	seen     map[DeploymentID]bool
	resolved map[DeploymentID]*Schema
}

// ResolveImports resolves the transitive import graph of the root schema and
// returns every reachable foreign schema keyed by deployment id. Imports on
// the same level of the graph are independent and are resolved concurrently;
// each deployment is looked up exactly once, so a diamond (two import paths
// to the same deployment) costs one lookup. A deployment that imports,
// directly or transitively, from one of its importers is a cycle and is
// rejected with an ImportCycle error.
func ResolveImports(ctx context.Context, root *Schema, store SubgraphStore, opts ...ResolveOption) (map[DeploymentID]*Schema, error) {
	r := &importResolver{
		store:    store,
		logger:   zap.NewNop(),
		tracer:   noop.Tracer{},
		seen:     make(map[DeploymentID]bool),
		resolved: make(map[DeploymentID]*Schema),
	}
	for _, opt := range opts {
		opt(r)
	}

	pending := r.frontier(root.Imports(), root.ID)
	for len(pending) > 0 {
		fetched, err := r.fetchAll(ctx, pending)
		if err != nil {
			return nil, err
		}
		pending = nil
		for _, s := range fetched {
			pending = append(pending, r.frontier(s.Imports(), root.ID)...)
		}
	}

	if err := r.findCycle(root.Imports(), []DeploymentID{root.ID}); err != nil {
		return nil, err
	}
	return r.resolved, nil
}

// frontier returns the references not looked up yet, reserving each so no
// later level fetches it again. The root is never fetched; its schema is
// already in hand.
func (r *importResolver) frontier(imports []Import, rootID DeploymentID) []SchemaReference {
	var refs []SchemaReference
	for _, imp := range imports {
		id := imp.From.Subgraph
		if id == rootID || r.seen[id] {
			continue
		}
		r.seen[id] = true
		refs = append(refs, imp.From)
	}
	return refs
}

// fetchAll resolves one level of references concurrently and records the
// schemas under their deployment ids.
func (r *importResolver) fetchAll(ctx context.Context, refs []SchemaReference) ([]*Schema, error) {
	g, ctx := errgroup.WithContext(ctx)
	fetched := make([]*Schema, len(refs))
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			spanCtx, finish := r.tracer.TraceSchemaImport(ctx, ref.String())
			s, err := ref.Resolve(spanCtx, r.store)
			finish(err)
			if err != nil {
				r.logger.Warn("schema import failed",
					zap.String("subgraph", ref.String()),
					zap.Error(err))
				return err
			}
			r.logger.Debug("resolved schema import", zap.String("subgraph", ref.String()))
			fetched[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, s := range fetched {
		r.resolved[refs[i].Subgraph] = s
	}
	return fetched, nil
}

// findCycle walks the fully fetched import graph depth first, carrying the
// chain of importer ids. An import referencing an id already on its chain is
// a cycle.
func (r *importResolver) findCycle(imports []Import, chain []DeploymentID) error {
	for _, imp := range imports {
		id := imp.From.Subgraph
		for _, ancestor := range chain {
			if ancestor == id {
				return &ImportError{Kind: ImportCycle, Reference: imp.From}
			}
		}
		if s, ok := r.resolved[id]; ok {
			if err := r.findCycle(s.Imports(), append(chain, id)); err != nil {
				return err
			}
		}
	}
	return nil
}

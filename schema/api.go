package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hybridx-exchange/graph-node/internal/introspection"
)

// ApiSchema is the externally queryable schema: the validated schema with
// the introspection fragment mixed in. The Query type gains the __schema,
// __type and _meta fields. Like Schema it is immutable and shared read-only.
type ApiSchema struct {
	schema *Schema

	// QueryType is the root query type. It is always present.
	QueryType *ast.Definition
	// SubscriptionType is the root subscription type, nil if the schema
	// declares none.
	SubscriptionType *ast.Definition

	objectTypes map[string]*ast.Definition
}

// FromSchema builds the ApiSchema for a validated schema. The input schema
// is not mutated; the merged document is a fresh definition list sharing the
// unchanged definitions.
func FromSchema(s *Schema) (*ApiSchema, error) {
	doc := addIntrospectionSchema(s.Document)

	queryType := doc.Definitions.ForName("Query")
	if queryType == nil || queryType.Kind != ast.Object {
		return nil, fmt.Errorf("the schema has no Query type")
	}
	var subscriptionType *ast.Definition
	if def := doc.Definitions.ForName("Subscription"); def != nil && def.Kind == ast.Object {
		subscriptionType = def
	}

	objectTypes := make(map[string]*ast.Definition)
	for _, def := range doc.Definitions {
		if def.Kind == ast.Object {
			objectTypes[def.Name] = def
		}
	}

	api := &Schema{
		ID:                s.ID,
		Document:          doc,
		InterfacesForType: s.InterfacesForType,
		TypesForInterface: s.TypesForInterface,
	}
	return &ApiSchema{
		schema:           api,
		QueryType:        queryType,
		SubscriptionType: subscriptionType,
		objectTypes:      objectTypes,
	}, nil
}

// Document returns the merged declaration tree served to the query engine.
func (a *ApiSchema) Document() *ast.SchemaDocument { return a.schema.Document }

// Schema returns the schema the merged document belongs to.
func (a *ApiSchema) Schema() *Schema { return a.schema }

// TypesForInterface maps an interface name to its implementers, in
// declaration order.
func (a *ApiSchema) TypesForInterface() map[string][]*ast.Definition {
	return a.schema.TypesForInterface
}

// ObjectType returns the object type with the given name, or nil. Lookup is
// O(1); the map always contains the root types.
func (a *ApiSchema) ObjectType(name string) *ast.Definition {
	return a.objectTypes[name]
}

// ObjectTypeNames returns the names of all object types in the merged
// document.
func (a *ApiSchema) ObjectTypeNames() []string {
	names := make([]string, 0, len(a.objectTypes))
	for name := range a.objectTypes {
		names = append(names, name)
	}
	return names
}

// addIntrospectionSchema merges the fixed introspection fragment into a copy
// of the document. The Query type is replaced by a copy carrying the meta
// fields; everything else is shared as-is.
func addIntrospectionSchema(doc *ast.SchemaDocument) *ast.SchemaDocument {
	fragment := introspection.Fragment()

	defs := make(ast.DefinitionList, 0, len(doc.Definitions)+len(fragment.Definitions))
	for _, def := range doc.Definitions {
		if def.Kind == ast.Object && def.Name == "Query" {
			def = withMetaFields(def)
		}
		defs = append(defs, def)
	}
	defs = append(defs, fragment.Definitions...)

	merged := *doc
	merged.Definitions = defs
	return &merged
}

func withMetaFields(def *ast.Definition) *ast.Definition {
	fields := make(ast.FieldList, 0, len(def.Fields)+3)
	fields = append(fields, def.Fields...)
	fields = append(fields,
		&ast.FieldDefinition{
			Name: "__schema",
			Type: ast.NonNullNamedType("__Schema", nil),
		},
		&ast.FieldDefinition{
			Name: "__type",
			Arguments: ast.ArgumentDefinitionList{
				&ast.ArgumentDefinition{Name: "name", Type: ast.NonNullNamedType("String", nil)},
			},
			Type: ast.NamedType("__Type", nil),
		},
		&ast.FieldDefinition{
			Name: MetaFieldName,
			Arguments: ast.ArgumentDefinitionList{
				&ast.ArgumentDefinition{Name: "block", Type: ast.NamedType("Block_height", nil)},
			},
			Type: ast.NamedType(MetaFieldType, nil),
		},
	)

	withMeta := *def
	withMeta.Fields = fields
	return &withMeta
}

// Package schema is the schema-processing core of the indexing node: it
// validates a subgraph's declaration tree, derives the interface lookup
// tables, extracts fulltext index definitions, resolves cross-subgraph type
// imports and builds the API schema served by the query layer.
//
// The raw SDL parser is external (vektah/gqlparser); this package consumes
// the declaration tree it produces.
package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/hybridx-exchange/graph-node/store"
)

// SchemaTypeName is the reserved object type carrying schema-level
// directives such as @fulltext and @import.
const SchemaTypeName = "_Schema_"

const (
	MetaFieldType = "_Meta_"
	MetaFieldName = "_meta"

	BlockFieldType = "_Block_"
)

// DeploymentID identifies one deployed subgraph.
type DeploymentID string

func (id DeploymentID) String() string { return string(id) }

// Schema is a validated and preprocessed subgraph schema. It is immutable
// after construction and shared read-only by all holders.
type Schema struct {
	ID       DeploymentID
	Document *ast.SchemaDocument

	// InterfacesForType maps an entity type name to the interfaces it
	// implements, in declaration order. No entry means it implements none.
	InterfacesForType map[string][]*ast.Definition

	// TypesForInterface maps an interface name to the entity types that
	// implement it, in declaration order. No entry means no implementers.
	TypesForInterface map[string][]*ast.Definition
}

// Parse turns raw SDL into a validated Schema. All validation errors are
// collected and returned together as a ValidationErrors value.
func Parse(raw string, id DeploymentID) (*Schema, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: id.String(), Input: raw})
	if err != nil {
		return nil, err
	}
	return New(doc, id)
}

// New validates an already-parsed declaration tree and derives the interface
// lookup tables.
func New(doc *ast.SchemaDocument, id DeploymentID) (*Schema, error) {
	if errs := Validate(doc); len(errs) > 0 {
		return nil, errs
	}
	s := &Schema{ID: id, Document: doc}
	s.InterfacesForType, s.TypesForInterface = buildIndexes(doc)
	return s, nil
}

// buildIndexes walks the object definitions once, in declaration order, and
// records both directions of the implements relation. Query planning depends
// on the implementer order being stable across rebuilds of the same source.
func buildIndexes(doc *ast.SchemaDocument) (map[string][]*ast.Definition, map[string][]*ast.Definition) {
	interfacesForType := make(map[string][]*ast.Definition)
	typesForInterface := make(map[string][]*ast.Definition)

	for _, def := range doc.Definitions {
		if def.Kind != ast.Object {
			continue
		}
		for _, name := range def.Interfaces {
			intf := doc.Definitions.ForName(name)
			if intf == nil || intf.Kind != ast.Interface {
				continue // rejected during validation
			}
			interfacesForType[def.Name] = append(interfacesForType[def.Name], intf)
			typesForInterface[name] = append(typesForInterface[name], def)
		}
	}
	return interfacesForType, typesForInterface
}

// ObjectType returns the object type definition with the given name, or nil.
func (s *Schema) ObjectType(name string) *ast.Definition {
	def := s.Document.Definitions.ForName(name)
	if def == nil || def.Kind != ast.Object {
		return nil
	}
	return def
}

// EntityTypes returns all object types that represent storable entities,
// in declaration order. The reserved _Schema_ type and the root operation
// types are not entities.
func (s *Schema) EntityTypes() []*ast.Definition {
	var defs []*ast.Definition
	for _, def := range s.Document.Definitions {
		if def.Kind == ast.Object && !isReservedObjectType(def.Name) {
			defs = append(defs, def)
		}
	}
	return defs
}

// IDValue coerces an entity's string id into the store value dictated by the
// declared type of the entity type's id field. It is called once per entity
// write.
func (s *Schema) IDValue(key store.EntityKey) (store.Value, error) {
	objType := s.ObjectType(key.EntityType.String())
	if objType == nil {
		return nil, fmt.Errorf("entity %s: unknown entity type %q", key, key.EntityType)
	}
	idField := objType.Fields.ForName("id")
	if idField == nil {
		return nil, fmt.Errorf("entity type %s has no id field", key.EntityType)
	}

	switch baseType := idField.Type.Name(); baseType {
	case "ID", "String":
		return store.String(key.EntityID), nil
	case "Bytes":
		b, err := store.BytesFromString(key.EntityID)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %v", key, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("entity type %s uses illegal type %s for id column", key.EntityType, baseType)
	}
}

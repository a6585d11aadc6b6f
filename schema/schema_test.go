package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hybridx-exchange/graph-node/schema"
)

const testSchema = `
interface Artist {
	id: ID!
	name: String!
}

type Musician implements Artist {
	id: ID!
	name: String!
	mainBand: Band
}

type Band implements Artist {
	id: ID!
	name: String!
	members: [Musician!]!
}

type Song {
	id: Bytes!
	title: String!
	writtenBy: Musician!
}

interface Release {
	id: ID!
	title: String!
}
`

func mustParse(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(sdl, "testsubgraph")
	require.NoError(t, err)
	return s
}

func TestParseBuildsInterfaceIndexes(t *testing.T) {
	s := mustParse(t, testSchema)

	impls, ok := s.TypesForInterface["Artist"]
	require.True(t, ok)
	require.Len(t, impls, 2)
	// Declaration order, stable across rebuilds.
	require.Equal(t, "Musician", impls[0].Name)
	require.Equal(t, "Band", impls[1].Name)

	intfs := s.InterfacesForType["Band"]
	require.Len(t, intfs, 1)
	require.Equal(t, "Artist", intfs[0].Name)
}

func TestIndexesAreReciprocal(t *testing.T) {
	s := mustParse(t, testSchema)

	for typeName, intfs := range s.InterfacesForType {
		for _, intf := range intfs {
			found := false
			for _, impl := range s.TypesForInterface[intf.Name] {
				if impl.Name == typeName {
					found = true
				}
			}
			if !found {
				t.Errorf("type %s lists interface %s but is not among its implementers", typeName, intf.Name)
			}
		}
	}
}

func TestInterfaceWithoutImplementersHasNoEntry(t *testing.T) {
	s := mustParse(t, testSchema)

	if _, ok := s.TypesForInterface["Release"]; ok {
		t.Error("interface with zero implementers must have no entry, not an empty one")
	}
	if _, ok := s.InterfacesForType["Song"]; ok {
		t.Error("type implementing nothing must have no entry")
	}
}

func TestEntityTypesExcludesReservedTypes(t *testing.T) {
	s := mustParse(t, testSchema+"\ntype _Schema_\ntype Query { band(id: ID!): Band }\n")

	for _, def := range s.EntityTypes() {
		switch def.Name {
		case schema.SchemaTypeName, "Query":
			t.Fatalf("%s must not be treated as an entity type", def.Name)
		}
	}
	require.Len(t, s.EntityTypes(), 3)
}

func TestObjectTypeLookup(t *testing.T) {
	s := mustParse(t, testSchema)

	require.NotNil(t, s.ObjectType("Band"))
	require.Nil(t, s.ObjectType("Artist"), "interfaces are not object types")
	require.Nil(t, s.ObjectType("Nonexistent"))
}

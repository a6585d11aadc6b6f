package schema_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hybridx-exchange/graph-node/schema"
)

const apiSchemaSource = `
type Band {
	id: ID!
	name: String!
}

type Query {
	band(id: ID!): Band
}

type Subscription {
	band(id: ID!): Band
}
`

func TestFromSchema(t *testing.T) {
	s := mustParse(t, apiSchemaSource)

	api, err := schema.FromSchema(s)
	require.NoError(t, err)

	require.NotNil(t, api.QueryType)
	require.Equal(t, "Query", api.QueryType.Name)
	require.NotNil(t, api.SubscriptionType)
	require.Equal(t, "Subscription", api.SubscriptionType.Name)

	// The roots are always reachable through the object type map.
	require.Same(t, api.QueryType, api.ObjectType("Query"))
	require.Same(t, api.SubscriptionType, api.ObjectType("Subscription"))
}

func TestFromSchemaAddsMetaFields(t *testing.T) {
	s := mustParse(t, apiSchemaSource)

	api, err := schema.FromSchema(s)
	require.NoError(t, err)

	for _, name := range []string{"__schema", "__type", "_meta"} {
		require.NotNil(t, api.QueryType.Fields.ForName(name), "query type must expose %s", name)
	}
	for _, name := range []string{"__Schema", "__Type", schema.MetaFieldType, schema.BlockFieldType} {
		require.NotNil(t, api.Document().Definitions.ForName(name), "merged document must define %s", name)
	}
}

func TestFromSchemaDoesNotMutateInput(t *testing.T) {
	s := mustParse(t, apiSchemaSource)
	queryFields := len(s.Document.Definitions.ForName("Query").Fields)
	definitions := len(s.Document.Definitions)

	_, err := schema.FromSchema(s)
	require.NoError(t, err)

	require.Len(t, s.Document.Definitions.ForName("Query").Fields, queryFields)
	require.Len(t, s.Document.Definitions, definitions)
}

func TestFromSchemaWithoutQueryTypeFails(t *testing.T) {
	s := mustParse(t, "type Band { id: ID! }")

	_, err := schema.FromSchema(s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Query")
}

func TestFromSchemaWithoutSubscriptionType(t *testing.T) {
	s := mustParse(t, `
	type Band {
		id: ID!
	}
	type Query {
		band(id: ID!): Band
	}`)

	api, err := schema.FromSchema(s)
	require.NoError(t, err)
	require.Nil(t, api.SubscriptionType)
}

func TestFromSchemaIsIdempotent(t *testing.T) {
	first, err := schema.FromSchema(mustParse(t, apiSchemaSource))
	require.NoError(t, err)
	second, err := schema.FromSchema(mustParse(t, apiSchemaSource))
	require.NoError(t, err)

	a, b := first.ObjectTypeNames(), second.ObjectTypeNames()
	sort.Strings(a)
	sort.Strings(b)
	require.Equal(t, a, b)
}

func TestApiSchemaExposesInterfaceIndex(t *testing.T) {
	s := mustParse(t, testSchema+`
	type Query {
		musician(id: ID!): Musician
	}`)

	api, err := schema.FromSchema(s)
	require.NoError(t, err)

	impls := api.TypesForInterface()["Artist"]
	require.Len(t, impls, 2)
}

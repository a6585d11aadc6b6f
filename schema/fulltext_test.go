package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hybridx-exchange/graph-node/schema"
)

const fulltextSchema = `
type Song {
	id: ID!
	title: String!
	lyrics: String
}

type _Schema_ @fulltext(
	name: "search"
	algorithm: rank
	include: [{ entity: "Song", fields: [{ name: "title" }] }]
)
`

func TestFulltextDefinitionFromDirective(t *testing.T) {
	s := mustParse(t, fulltextSchema)

	defs := s.FulltextDefinitions()
	require.Len(t, defs, 1)

	def := defs[0]
	require.Equal(t, "search", def.Name)
	require.Equal(t, schema.FulltextAlgorithmRank, def.Algorithm)
	require.Equal(t, schema.FulltextLanguageDefault, def.Language)
	require.Equal(t, map[string]bool{"title": true}, def.IncludedFields)
}

func TestFulltextDefinitionsMultipleFields(t *testing.T) {
	sdl := `
	type Song {
		id: ID!
		title: String!
		lyrics: String
	}

	type _Schema_ @fulltext(
		name: "songSearch"
		algorithm: proximityRank
		include: [{ entity: "Song", fields: [{ name: "title" }, { name: "lyrics" }] }]
	)`
	s := mustParse(t, sdl)

	defs := s.FulltextDefinitions()
	require.Len(t, defs, 1)
	require.Equal(t, schema.FulltextAlgorithmProximityRank, defs[0].Algorithm)
	require.Equal(t, map[string]bool{"title": true, "lyrics": true}, defs[0].IncludedFields)
}

func TestFulltextDefinitionsAbsentWithoutDirectives(t *testing.T) {
	s := mustParse(t, "type Song { id: ID! }")
	require.Empty(t, s.FulltextDefinitions())
}

func TestParseFulltextAlgorithm(t *testing.T) {
	for token, want := range map[string]schema.FulltextAlgorithm{
		"rank":          schema.FulltextAlgorithmRank,
		"proximityRank": schema.FulltextAlgorithmProximityRank,
	} {
		got, err := schema.ParseFulltextAlgorithm(token)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := schema.ParseFulltextAlgorithm("bestEffort")
	require.Error(t, err)
	for _, want := range []string{"bestEffort", "rank", "proximityRank"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

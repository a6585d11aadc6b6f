package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// FulltextAlgorithm is the ranking algorithm of a fulltext search index.
type FulltextAlgorithm int

const (
	FulltextAlgorithmRank FulltextAlgorithm = iota
	FulltextAlgorithmProximityRank
)

func (a FulltextAlgorithm) String() string {
	switch a {
	case FulltextAlgorithmRank:
		return "rank"
	case FulltextAlgorithmProximityRank:
		return "proximityRank"
	default:
		return fmt.Sprintf("FulltextAlgorithm(%d)", int(a))
	}
}

// ParseFulltextAlgorithm maps an algorithm token from the @fulltext directive
// to its FulltextAlgorithm value.
func ParseFulltextAlgorithm(token string) (FulltextAlgorithm, error) {
	switch token {
	case "rank":
		return FulltextAlgorithmRank, nil
	case "proximityRank":
		return FulltextAlgorithmProximityRank, nil
	default:
		return 0, fmt.Errorf("the provided fulltext search algorithm %s is invalid. It must be one of: rank, proximityRank", token)
	}
}

// FulltextLanguage is the text search language of a fulltext index. The
// language is reserved and currently unconfigurable; every index uses
// FulltextLanguageDefault. This is a known limitation, not a bug.
type FulltextLanguage string

const FulltextLanguageDefault FulltextLanguage = "simple"

// FulltextDefinition is one fulltext search index declared on the schema.
type FulltextDefinition struct {
	Name           string
	Algorithm      FulltextAlgorithm
	Language       FulltextLanguage
	IncludedFields map[string]bool
}

// FulltextDefinitionFromDirective builds a FulltextDefinition from a
// @fulltext directive. The directive must already have passed validation;
// a malformed directive here is a programming error and panics.
func FulltextDefinitionFromDirective(dir *ast.Directive) FulltextDefinition {
	name := mustArgument(dir, "name").Raw

	algorithm, err := ParseFulltextAlgorithm(mustArgument(dir, "algorithm").Raw)
	if err != nil {
		panic(fmt.Sprintf("fulltext directive %q: %v", name, err))
	}

	// Fulltext indexes are limited to one entity, so the first (and only)
	// include entry is taken.
	include := mustArgument(dir, "include")
	if include.Kind != ast.ListValue || len(include.Children) == 0 {
		panic(fmt.Sprintf("fulltext directive %q has an empty include list", name))
	}
	included := include.Children[0].Value

	includedFields := make(map[string]bool)
	fields := included.Children.ForName("fields")
	if fields == nil {
		panic(fmt.Sprintf("fulltext directive %q includes an entity without fields", name))
	}
	for _, child := range fields.Children {
		fieldName := child.Value.Children.ForName("name")
		if fieldName == nil {
			panic(fmt.Sprintf("fulltext directive %q has a field entry without a name", name))
		}
		includedFields[fieldName.Raw] = true
	}

	return FulltextDefinition{
		Name:           name,
		Algorithm:      algorithm,
		Language:       FulltextLanguageDefault,
		IncludedFields: includedFields,
	}
}

// FulltextDefinitions returns the fulltext indexes declared on the reserved
// _Schema_ type. A schema without fulltext directives yields no definitions.
func (s *Schema) FulltextDefinitions() []FulltextDefinition {
	schemaType := s.Document.Definitions.ForName(SchemaTypeName)
	if schemaType == nil {
		return nil
	}
	var defs []FulltextDefinition
	for _, dir := range schemaType.Directives.ForNames(fulltextDirectiveName) {
		defs = append(defs, FulltextDefinitionFromDirective(dir))
	}
	return defs
}

func mustArgument(dir *ast.Directive, name string) *ast.Value {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		panic(fmt.Sprintf("%s directive is missing the %q argument", dir.Name, name))
	}
	return arg.Value
}

// Package introspection carries the fixed schema fragment that is mixed into
// every API schema: the standard introspection types plus the block metadata
// types served under the _meta root field. The fragment's content is not
// user-controlled and never changes at runtime.
package introspection

import (
	"sync"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// schemaSrc is the introspection portion of the fragment, following the
// GraphQL specification.
const schemaSrc = `
type __Schema {
	description: String
	types: [__Type!]!
	queryType: __Type!
	mutationType: __Type
	subscriptionType: __Type
	directives: [__Directive!]!
}

type __Type {
	kind: __TypeKind!
	name: String
	description: String
	fields(includeDeprecated: Boolean = false): [__Field!]
	interfaces: [__Type!]
	possibleTypes: [__Type!]
	enumValues(includeDeprecated: Boolean = false): [__EnumValue!]
	inputFields: [__InputValue!]
	ofType: __Type
}

type __Field {
	name: String!
	description: String
	args: [__InputValue!]!
	type: __Type!
	isDeprecated: Boolean!
	deprecationReason: String
}

type __InputValue {
	name: String!
	description: String
	type: __Type!
	defaultValue: String
}

type __EnumValue {
	name: String!
	description: String
	isDeprecated: Boolean!
	deprecationReason: String
}

enum __TypeKind {
	SCALAR
	OBJECT
	INTERFACE
	UNION
	ENUM
	INPUT_OBJECT
	LIST
	NON_NULL
}

type __Directive {
	name: String!
	description: String
	locations: [__DirectiveLocation!]!
	args: [__InputValue!]!
}

enum __DirectiveLocation {
	QUERY
	MUTATION
	SUBSCRIPTION
	FIELD
	FRAGMENT_DEFINITION
	FRAGMENT_SPREAD
	INLINE_FRAGMENT
	SCHEMA
	SCALAR
	OBJECT
	FIELD_DEFINITION
	ARGUMENT_DEFINITION
	INTERFACE
	UNION
	ENUM
	ENUM_VALUE
	INPUT_OBJECT
	INPUT_FIELD_DEFINITION
}
`

// metaSrc is the block metadata portion of the fragment. _meta on the root
// query type reports which block the served data is aligned with.
const metaSrc = `
type _Block_ {
	"The hash of the block"
	hash: Bytes
	"The block number"
	number: Int!
}

"The type for the top-level _meta field"
type _Meta_ {
	"""
	Information about a specific subgraph block. The hash of the block
	will be null if the _meta field has a block constraint that asks for
	a block number. It will be filled if the _meta field has no block
	constraint and therefore asks for the latest block
	"""
	block: _Block_!
	"The deployment ID"
	deployment: String!
	"If true, the subgraph encountered indexing errors at some past block"
	hasIndexingErrors: Boolean!
}

input Block_height {
	hash: Bytes
	number: Int
	number_gte: Int
}
`

var (
	once     sync.Once
	fragment *ast.SchemaDocument
)

// Fragment returns the parsed introspection fragment. It is computed on first
// use and shared for the remainder of the process; callers must treat it as
// read-only.
func Fragment() *ast.SchemaDocument {
	once.Do(func() {
		doc, err := parser.ParseSchema(&ast.Source{
			Name:    "introspection.graphql",
			Input:   schemaSrc + metaSrc,
			BuiltIn: true,
		})
		if err != nil {
			panic("the schema `introspection.graphql` is invalid: " + err.Error())
		}
		fragment = doc
	})
	return fragment
}

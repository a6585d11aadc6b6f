package schema

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

const (
	fulltextDirectiveName = "fulltext"
	importDirectiveName   = "import"
)

// ValidationCode identifies a class of schema validation failure. Codes are
// stable; messages are for humans.
type ValidationCode string

const (
	DuplicateTypeName               ValidationCode = "DuplicateTypeName"
	InterfaceUndefined              ValidationCode = "InterfaceUndefined"
	NotAnInterface                  ValidationCode = "NotAnInterface"
	InterfaceFieldMissing           ValidationCode = "InterfaceFieldMissing"
	InterfaceFieldTypeMismatch      ValidationCode = "InterfaceFieldTypeMismatch"
	IDFieldMissing                  ValidationCode = "IDFieldMissing"
	IllegalIDType                   ValidationCode = "IllegalIDType"
	FulltextNameUndefined           ValidationCode = "FulltextNameUndefined"
	FulltextNameDuplicated          ValidationCode = "FulltextNameDuplicated"
	FulltextAlgorithmUndefined      ValidationCode = "FulltextAlgorithmUndefined"
	FulltextIncludeInvalid          ValidationCode = "FulltextIncludeInvalid"
	FulltextIncludedEntityUndefined ValidationCode = "FulltextIncludedEntityUndefined"
	FulltextIncludedFieldUndefined  ValidationCode = "FulltextIncludedFieldUndefined"
	ImportTypeInvalid               ValidationCode = "ImportTypeInvalid"
	ImportReferenceInvalid          ValidationCode = "ImportReferenceInvalid"
	ImportAliasCollision            ValidationCode = "ImportAliasCollision"
)

// ValidationError is one schema validation failure. Every message names the
// offending type, field or value.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(code ValidationCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors is the full batch of problems found in one validation
// pass. Validation is exhaustive, never fail-fast, so users see every error
// at once.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the structural and semantic correctness of a declaration
// tree. A nil result means the tree is a valid subgraph schema.
func Validate(doc *ast.SchemaDocument) ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, validateTypeNames(doc)...)

	for _, def := range doc.Definitions {
		if def.Kind != ast.Object {
			continue
		}
		errs = append(errs, validateInterfaces(doc, def)...)
		if !isReservedObjectType(def.Name) {
			errs = append(errs, validateIDField(def)...)
		}
	}

	if schemaType := doc.Definitions.ForName(SchemaTypeName); schemaType != nil {
		errs = append(errs, validateFulltextDirectives(doc, schemaType)...)
		errs = append(errs, validateImportDirectives(schemaType)...)
	}

	return errs
}

// isReservedObjectType reports whether an object type is exempt from the
// entity id requirement: the _Schema_ directive carrier and the root
// operation types, which hold query fields rather than stored entities.
func isReservedObjectType(name string) bool {
	switch name {
	case SchemaTypeName, "Query", "Subscription":
		return true
	}
	return false
}

func validateTypeNames(doc *ast.SchemaDocument) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, def := range doc.Definitions {
		if seen[def.Name] {
			errs = append(errs, validationErrorf(DuplicateTypeName,
				"type %q is defined more than once", def.Name))
			continue
		}
		seen[def.Name] = true
	}
	return errs
}

// validateInterfaces checks that every interface an object type claims to
// implement exists, and that the object declares each field the interface
// requires with an identical type.
func validateInterfaces(doc *ast.SchemaDocument, def *ast.Definition) ValidationErrors {
	var errs ValidationErrors
	for _, name := range def.Interfaces {
		intf := doc.Definitions.ForName(name)
		if intf == nil {
			errs = append(errs, validationErrorf(InterfaceUndefined,
				"type %q implements interface %q which is not defined", def.Name, name))
			continue
		}
		if intf.Kind != ast.Interface {
			errs = append(errs, validationErrorf(NotAnInterface,
				"type %q implements %q which is not an interface", def.Name, name))
			continue
		}
		for _, required := range intf.Fields {
			field := def.Fields.ForName(required.Name)
			if field == nil {
				errs = append(errs, validationErrorf(InterfaceFieldMissing,
					"type %q does not declare field %q required by interface %q",
					def.Name, required.Name, name))
				continue
			}
			if field.Type.String() != required.Type.String() {
				errs = append(errs, validationErrorf(InterfaceFieldTypeMismatch,
					"field %q of type %q has type %s but interface %q requires %s",
					field.Name, def.Name, field.Type.String(), name, required.Type.String()))
			}
		}
	}
	return errs
}

func validateIDField(def *ast.Definition) ValidationErrors {
	idField := def.Fields.ForName("id")
	if idField == nil {
		return ValidationErrors{validationErrorf(IDFieldMissing,
			"entity type %q must declare an id field", def.Name)}
	}
	switch baseType := idField.Type.Name(); baseType {
	case "ID", "String", "Bytes":
		return nil
	default:
		return ValidationErrors{validationErrorf(IllegalIDType,
			"entity type %q uses illegal type %s for id column", def.Name, baseType)}
	}
}

func validateFulltextDirectives(doc *ast.SchemaDocument, schemaType *ast.Definition) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)

	for _, dir := range schemaType.Directives.ForNames(fulltextDirectiveName) {
		name, ok := stringArgument(dir, "name")
		if !ok {
			errs = append(errs, validationErrorf(FulltextNameUndefined,
				"@fulltext directive must declare a string name argument"))
		} else if seen[name] {
			errs = append(errs, validationErrorf(FulltextNameDuplicated,
				"fulltext index name %q is used more than once", name))
		} else {
			seen[name] = true
		}

		if arg := dir.Arguments.ForName("algorithm"); arg == nil || arg.Value.Kind != ast.EnumValue {
			errs = append(errs, validationErrorf(FulltextAlgorithmUndefined,
				"@fulltext directive %q must declare an algorithm", name))
		} else if _, err := ParseFulltextAlgorithm(arg.Value.Raw); err != nil {
			errs = append(errs, validationErrorf(FulltextAlgorithmUndefined, "%v", err))
		}

		errs = append(errs, validateFulltextInclude(doc, dir, name)...)
	}
	return errs
}

// validateFulltextInclude checks the include argument: a list with exactly
// one entry (fulltext indexes over multiple entities are unsupported) naming
// a declared entity type and a non-empty list of its fields.
func validateFulltextInclude(doc *ast.SchemaDocument, dir *ast.Directive, name string) ValidationErrors {
	arg := dir.Arguments.ForName("include")
	if arg == nil || arg.Value.Kind != ast.ListValue || len(arg.Value.Children) != 1 {
		return ValidationErrors{validationErrorf(FulltextIncludeInvalid,
			"@fulltext directive %q must include exactly one entity", name)}
	}

	included := arg.Value.Children[0].Value
	if included.Kind != ast.ObjectValue {
		return ValidationErrors{validationErrorf(FulltextIncludeInvalid,
			"@fulltext directive %q has a malformed include entry", name)}
	}

	var errs ValidationErrors
	var entityDef *ast.Definition
	if entity := included.Children.ForName("entity"); entity == nil || entity.Kind != ast.StringValue {
		errs = append(errs, validationErrorf(FulltextIncludeInvalid,
			"@fulltext directive %q must name the included entity", name))
	} else {
		entityDef = doc.Definitions.ForName(entity.Raw)
		if entityDef == nil || entityDef.Kind != ast.Object {
			errs = append(errs, validationErrorf(FulltextIncludedEntityUndefined,
				"@fulltext directive %q includes entity %q which is not defined", name, entity.Raw))
			entityDef = nil
		}
	}

	fields := included.Children.ForName("fields")
	if fields == nil || fields.Kind != ast.ListValue || len(fields.Children) == 0 {
		errs = append(errs, validationErrorf(FulltextIncludeInvalid,
			"@fulltext directive %q must include at least one field", name))
		return errs
	}
	for _, child := range fields.Children {
		fieldName := child.Value.Children.ForName("name")
		if child.Value.Kind != ast.ObjectValue || fieldName == nil || fieldName.Kind != ast.StringValue {
			errs = append(errs, validationErrorf(FulltextIncludeInvalid,
				"@fulltext directive %q has a malformed field entry", name))
			continue
		}
		if entityDef != nil && entityDef.Fields.ForName(fieldName.Raw) == nil {
			errs = append(errs, validationErrorf(FulltextIncludedFieldUndefined,
				"fulltext field %q is not declared on entity %q", fieldName.Raw, entityDef.Name))
		}
	}
	return errs
}

func validateImportDirectives(schemaType *ast.Definition) ValidationErrors {
	var errs ValidationErrors
	aliases := make(map[string]bool)

	for _, dir := range schemaType.Directives.ForNames(importDirectiveName) {
		types := dir.Arguments.ForName("types")
		if types == nil || types.Value.Kind != ast.ListValue {
			errs = append(errs, validationErrorf(ImportTypeInvalid,
				"@import directive must declare a list of types"))
		} else {
			for _, child := range types.Value.Children {
				imported, ok := ParseImportedType(child.Value)
				if !ok {
					errs = append(errs, validationErrorf(ImportTypeInvalid,
						"@import directive has invalid type %s", child.Value.String()))
					continue
				}
				if aliases[imported.Alias] {
					errs = append(errs, validationErrorf(ImportAliasCollision,
						"import alias %q is used more than once", imported.Alias))
					continue
				}
				aliases[imported.Alias] = true
			}
		}

		from := dir.Arguments.ForName("from")
		if from == nil {
			errs = append(errs, validationErrorf(ImportReferenceInvalid,
				"@import directive must declare the subgraph to import from"))
		} else if _, ok := ParseSchemaReference(from.Value); !ok {
			errs = append(errs, validationErrorf(ImportReferenceInvalid,
				"@import directive has invalid subgraph reference %s", from.Value.String()))
		}
	}
	return errs
}

func stringArgument(dir *ast.Directive, name string) (string, bool) {
	arg := dir.Arguments.ForName(name)
	if arg == nil || arg.Value.Kind != ast.StringValue {
		return "", false
	}
	return arg.Value.Raw, true
}

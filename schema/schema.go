// Package schema models the dereferenced OpenAPI 3 schema fragments consumed
// by the example generator and the property tree renderer.
//
// A [Schema] is plain recursive data: properties, items, additional
// properties and oneOf alternatives are themselves schemas. All $ref pointers
// are expected to be resolved before a Schema is built (see the document
// package). Schemas are treated as immutable once built; nothing in this
// module writes to a Schema it did not create.
package schema

import "slices"

// Type names recognized by the generator and renderer.
// "map" and "number($float)" are vendor types found in generated specs.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeMap     = "map"
	TypeFloat   = "number($float)"
)

// Kind classifies a Schema into one of the shapes the algorithms branch on.
type Kind int

const (
	// KindUntyped is a node with neither a type nor oneOf alternatives.
	KindUntyped Kind = iota
	// KindUnion is a node with at least one oneOf alternative.
	KindUnion
	// KindObject is a node with type "object".
	KindObject
	// KindArray is a node with type "array".
	KindArray
	// KindMap is the vendor free-form map type.
	KindMap
	// KindScalar covers every other type, including unknown ones.
	KindScalar
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUntyped:
		return "untyped"
	case KindUnion:
		return "union"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindScalar:
		return "scalar"
	}
	return "unknown"
}

// Property is a named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema is a dereferenced OpenAPI 3 / JSON Schema fragment.
type Schema struct {
	Type        string
	Format      string
	Description string

	// Properties keeps declaration order. Nil means absent.
	Properties []Property
	Required   Required

	Items *Schema

	// AdditionalProperties is nil when absent or false.
	// AdditionalPropertiesDenied records an explicit false.
	AdditionalProperties       *Schema
	AdditionalPropertiesDenied bool

	OneOf []*Schema

	Enum []any
	// Values overrides Enum for display only.
	Values []any

	// Example and Default are nil when absent.
	Example any
	Default any

	Minimum *float64
	Maximum *float64

	Deprecated bool
	// Hidden prunes the node from rendered property trees.
	Hidden bool
}

// Kind returns the shape of the schema. A nil schema is untyped.
// oneOf wins over type.
func (s *Schema) Kind() Kind {
	if s == nil {
		return KindUntyped
	}
	if len(s.OneOf) > 0 {
		return KindUnion
	}
	switch s.Type {
	case "":
		return KindUntyped
	case TypeObject:
		return KindObject
	case TypeArray:
		return KindArray
	case TypeMap:
		return KindMap
	default:
		return KindScalar
	}
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// HasProperties reports whether the schema declares a properties map,
// even an empty one.
func (s *Schema) HasProperties() bool {
	return s != nil && s.Properties != nil
}

// HasRange reports whether both numeric bounds are set.
func (s *Schema) HasRange() bool {
	return s != nil && s.Minimum != nil && s.Maximum != nil
}

// HasEnum reports whether the schema lists allowed values.
func (s *Schema) HasEnum() bool {
	return s != nil && s.Enum != nil
}

// IsNumeric reports whether the type is one of the numeric types.
func (s *Schema) IsNumeric() bool {
	if s == nil {
		return false
	}
	switch s.Type {
	case TypeNumber, TypeInteger, TypeFloat:
		return true
	}
	return false
}

// WithoutType returns a shallow copy of s with Type cleared.
func (s *Schema) WithoutType() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.Type = ""
	return &c
}

// Required holds either representation of "required" found in specs:
// a boolean on an inlined property, or a list of child names on an object.
type Required struct {
	// Flag is the boolean form.
	Flag bool
	// Names is the list form. Nil means the boolean form applies.
	Names []string
}

// RequiredFlag returns the boolean form.
func RequiredFlag(v bool) Required {
	return Required{Flag: v}
}

// RequiredNames returns the list form.
func RequiredNames(names ...string) Required {
	if names == nil {
		names = []string{}
	}
	return Required{Names: names}
}

// IsList reports whether the list form is in use.
func (r Required) IsList() bool {
	return r.Names != nil
}

// IsZero reports whether neither form says anything.
func (r Required) IsZero() bool {
	return r.Names == nil && !r.Flag
}

// Has reports whether the child called name is required: membership when
// the list form is used, otherwise the boolean applies to every child.
func (r Required) Has(name string) bool {
	if r.Names != nil {
		return slices.Contains(r.Names, name)
	}
	return r.Flag
}

// Package example derives representative JSON values from OpenAPI schemas
// and assembles the named example sets shown next to request and response
// bodies.
//
// Generation is deterministic: the same schema always yields the same value,
// so generated payloads are safe to embed in documentation snapshots.
//
// # Union handling
//
// A oneOf node carries no discriminant resolution. The alternative used for
// generation is chosen by a [UnionStrategy]; the default,
// [FirstAlternative], always takes the first one.
//
//	value := example.Generate(s)
//
//	g := example.Generator{Union: myStrategy}
//	value = g.Generate(s)
package example

import (
	"math"

	"github.com/erraggy/oasdocs/schema"
)

// UnionStrategy picks the alternative of a oneOf node to generate from.
// Implementations receive a non-empty slice.
type UnionStrategy interface {
	Choose(alternatives []*schema.Schema) *schema.Schema
}

// UnionStrategyFunc adapts a function to UnionStrategy.
type UnionStrategyFunc func(alternatives []*schema.Schema) *schema.Schema

// Choose implements UnionStrategy.
func (f UnionStrategyFunc) Choose(alternatives []*schema.Schema) *schema.Schema {
	return f(alternatives)
}

// FirstAlternative always selects alternatives[0].
var FirstAlternative UnionStrategy = UnionStrategyFunc(func(alternatives []*schema.Schema) *schema.Schema {
	return alternatives[0]
})

// Placeholder values used when a schema carries no example.
const (
	StringPlaceholder = "string"
	FloatPlaceholder  = 0.5
)

// Generator produces example values. The zero value uses FirstAlternative.
type Generator struct {
	Union UnionStrategy
}

var defaultGenerator = Generator{Union: FirstAlternative}

// Generate returns a representative value for s using the default generator.
// A nil or untyped schema yields nil.
func Generate(s *schema.Schema) any {
	return defaultGenerator.Generate(s)
}

// Generate returns a representative value for s.
//
// Objects become *schema.OrderedMap values in property order, arrays become
// []any, integers int64 and other numbers float64.
func (g Generator) Generate(s *schema.Schema) any {
	switch s.Kind() {
	case schema.KindUntyped:
		return nil
	case schema.KindUnion:
		return g.Generate(g.union().Choose(s.OneOf))
	case schema.KindObject:
		out := schema.NewOrderedMap()
		for _, p := range s.Properties {
			out.Set(p.Name, g.Generate(p.Schema))
		}
		return out
	case schema.KindArray:
		if s.Items == nil {
			return []any{}
		}
		value := g.Generate(s.Items)
		// Items that already enumerate several entries are not wrapped again.
		if list, ok := value.([]any); ok {
			return list
		}
		return []any{value}
	case schema.KindMap:
		return schema.NewOrderedMap()
	case schema.KindScalar:
		return g.scalar(s)
	}
	return nil
}

func (g Generator) union() UnionStrategy {
	if g.Union == nil {
		return FirstAlternative
	}
	return g.Union
}

func (g Generator) scalar(s *schema.Schema) any {
	if s.IsNumeric() {
		return number(s)
	}
	if s.Example != nil {
		return s.Example
	}
	if s.Type == schema.TypeString {
		return StringPlaceholder
	}
	return nil
}

func number(s *schema.Schema) any {
	if s.Example != nil {
		return s.Example
	}
	if s.HasRange() {
		mid := *s.Minimum + (*s.Maximum-*s.Minimum)/2
		if s.Type == schema.TypeInteger {
			return int64(math.Floor(mid))
		}
		return mid
	}
	switch s.Type {
	case schema.TypeFloat:
		return FloatPlaceholder
	case schema.TypeInteger:
		return int64(0)
	default:
		return float64(0)
	}
}

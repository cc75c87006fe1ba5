package document

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/internal/schemautil"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/schema"
)

// decodeSchema builds a schema from an inline (non-reference) schema node.
// Boolean schemas decode to an empty schema.
func (r *resolver) decodeSchema(n *yaml.Node) (*schema.Schema, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool" {
		return &schema.Schema{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "schema must be an object")
	}

	s := &schema.Schema{}
	var (
		allOf   []*yaml.Node
		anyOf   []*yaml.Node
		samples *yaml.Node
		err     error
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, unalias(n.Content[i+1])
		switch key {
		case "type":
			var t any
			if t, err = r.value(val); err == nil {
				s.Type = schemautil.PrimaryType(t)
			}
		case "format":
			s.Format = val.Value
		case "description":
			s.Description = val.Value
		case "properties":
			s.Properties, err = r.properties(val)
		case "required":
			s.Required, err = r.required(val)
		case "items":
			if val.Kind == yaml.SequenceNode {
				if len(val.Content) > 0 {
					s.Items, err = r.schema(val.Content[0])
				}
			} else {
				s.Items, err = r.schema(val)
			}
		case "additionalProperties":
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!bool" {
				s.AdditionalPropertiesDenied = val.Value == "false"
			} else {
				s.AdditionalProperties, err = r.schema(val)
			}
		case "oneOf":
			s.OneOf, err = r.schemaList(val)
		case "anyOf":
			anyOf = val.Content
		case "allOf":
			allOf = val.Content
		case "enum":
			s.Enum, err = r.list(val)
		case "values", "x-values":
			s.Values, err = r.list(val)
		case "example":
			s.Example, err = r.value(val)
		case "examples":
			samples = val
		case "default":
			s.Default, err = r.value(val)
		case "minimum":
			s.Minimum, err = r.number(val)
		case "maximum":
			s.Maximum, err = r.number(val)
		case "deprecated":
			s.Deprecated = isTrue(val)
		case "hidden", "x-hidden":
			s.Hidden = isTrue(val)
		}
		if err != nil {
			return nil, err
		}
	}

	// OAS 3.1 example arrays stand in for a missing example.
	if s.Example == nil && samples != nil && samples.Kind == yaml.SequenceNode && len(samples.Content) > 0 {
		if s.Example, err = r.value(samples.Content[0]); err != nil {
			return nil, err
		}
	}
	if len(s.OneOf) == 0 && len(anyOf) > 0 {
		if s.OneOf, err = r.schemaList(&yaml.Node{Kind: yaml.SequenceNode, Content: anyOf}); err != nil {
			return nil, err
		}
	}
	for _, part := range allOf {
		sub, err := r.schema(part)
		if err != nil {
			return nil, err
		}
		mergeAllOf(s, sub)
	}
	return s, nil
}

func (r *resolver) properties(n *yaml.Node) ([]schema.Property, error) {
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "properties must be an object")
	}
	props := make([]schema.Property, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		s, err := r.schema(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		props = append(props, schema.Property{Name: n.Content[i].Value, Schema: s})
	}
	return props, nil
}

func (r *resolver) required(n *yaml.Node) (schema.Required, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return schema.RequiredFlag(isTrue(n)), nil
	case yaml.SequenceNode:
		names := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			names = append(names, unalias(item).Value)
		}
		return schema.RequiredNames(names...), nil
	}
	return schema.Required{}, r.parseError(n, "required must be a boolean or a list of names")
}

func (r *resolver) schemaList(n *yaml.Node) ([]*schema.Schema, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, r.parseError(n, "expected a list of schemas")
	}
	out := make([]*schema.Schema, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := r.schema(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *resolver) list(n *yaml.Node) ([]any, error) {
	v, err := r.value(n)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, r.parseError(n, "expected a list")
	}
	return items, nil
}

func (r *resolver) number(n *yaml.Node) (*float64, error) {
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil || n.Kind != yaml.ScalarNode {
		return nil, r.parseError(n, fmt.Sprintf("expected a number, got %q", n.Value))
	}
	return &f, nil
}

// value converts a literal YAML/JSON value. Mappings keep their key order.
func (r *resolver) value(n *yaml.Node) (any, error) {
	n = unalias(n)
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		m := schema.NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := r.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := r.value(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return r.scalar(n)
	}
	return nil, r.parseError(n, "unsupported value")
}

func (r *resolver) scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return b, nil
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f, nil
		}
	default:
		return n.Value, nil
	}

	// YAML spellings strconv does not know, such as "yes", ".inf" or "1_000".
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, r.parseError(n, err.Error())
	}
	return v, nil
}

func (r *resolver) parseError(n *yaml.Node, msg string) error {
	return &oaserrors.ParseError{
		Path:    r.source,
		Line:    n.Line,
		Column:  n.Column,
		Message: msg,
	}
}

func isTrue(n *yaml.Node) bool {
	n = unalias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	b, err := strconv.ParseBool(n.Value)
	return err == nil && b
}

// mergeAllOf folds an allOf member into s. Fields already set on s win;
// properties are appended and required lists are concatenated.
func mergeAllOf(s, sub *schema.Schema) {
	if sub == nil {
		return
	}
	if s.Type == "" {
		s.Type = sub.Type
	}
	if s.Format == "" {
		s.Format = sub.Format
	}
	if s.Description == "" {
		s.Description = sub.Description
	}
	for _, p := range sub.Properties {
		if s.Property(p.Name) == nil {
			s.Properties = append(s.Properties, p)
		}
	}
	if sub.Properties != nil && s.Properties == nil {
		s.Properties = []schema.Property{}
	}
	switch {
	case s.Required.IsZero():
		s.Required = sub.Required
	case s.Required.IsList() && sub.Required.IsList():
		s.Required = schema.RequiredNames(append(slices.Clone(s.Required.Names), sub.Required.Names...)...)
	}
	if s.Items == nil {
		s.Items = sub.Items
	}
	if s.AdditionalProperties == nil && !s.AdditionalPropertiesDenied {
		s.AdditionalProperties = sub.AdditionalProperties
		s.AdditionalPropertiesDenied = sub.AdditionalPropertiesDenied
	}
	if s.OneOf == nil {
		s.OneOf = sub.OneOf
	}
	if s.Enum == nil {
		s.Enum = sub.Enum
	}
	if s.Values == nil {
		s.Values = sub.Values
	}
	if s.Example == nil {
		s.Example = sub.Example
	}
	if s.Default == nil {
		s.Default = sub.Default
	}
	if s.Minimum == nil {
		s.Minimum = sub.Minimum
	}
	if s.Maximum == nil {
		s.Maximum = sub.Maximum
	}
	s.Deprecated = s.Deprecated || sub.Deprecated
	s.Hidden = s.Hidden || sub.Hidden
}

// Package proptree turns OpenAPI schemas into the nested property listing
// shown on API reference pages.
//
// Each documented field becomes a [Node] carrying its display type,
// required marker, constraints and description. Object properties and
// oneOf alternatives become collapsed child listings. Rendering is pure:
// the input schema is never modified.
package proptree

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/erraggy/oasdocs/schema"
)

// Synthetic names used for entries that have no property name of their own.
const (
	ItemsName      = "[]"
	AdditionalName = "*"
)

// Node is one documented field.
type Node struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Range   string   `json:"range,omitempty" yaml:"range,omitempty"`
	Example string   `json:"example,omitempty" yaml:"example,omitempty"`

	// ItemsExample is the inline example of array items without properties.
	ItemsExample string `json:"items_example,omitempty" yaml:"items_example,omitempty"`

	// Properties lists the node's own sub-properties, collapsed by default.
	Properties []*Node `json:"properties,omitempty" yaml:"properties,omitempty"`
	// ItemProperties lists the sub-properties of array items.
	ItemProperties []*Node `json:"item_properties,omitempty" yaml:"item_properties,omitempty"`
	// Variants lists the oneOf alternatives, collapsed by default.
	Variants []*Node `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// HasChildren reports whether the node has any collapsible listing.
func (n *Node) HasChildren() bool {
	return len(n.Properties) > 0 || len(n.ItemProperties) > 0 || len(n.Variants) > 0
}

// Context names the schema being rendered and how required it is.
type Context struct {
	// Name is the field name. Ignored when Unnamed is set.
	Name string
	// Unnamed marks a body-level wrapper. Unnamed objects and arrays are
	// unwrapped into their properties or items.
	Unnamed bool
	// Required is the requirement information supplied by the parent:
	// the parent's list for unnamed wrappers, or the field's normalized
	// boolean for named fields.
	Required schema.Required
	// ID prefixes the IDs of produced nodes.
	ID string
}

// Named returns a Context for a named field.
func Named(name string, required bool, id string) Context {
	return Context{Name: name, Required: schema.RequiredFlag(required), ID: id}
}

// Root returns a Context for an unnamed body schema.
func Root(id string) Context {
	return Context{Unnamed: true, ID: id}
}

// Render returns the display nodes for s. Unnamed wrappers may produce
// several sibling nodes; hidden or nil schemas produce none.
func Render(s *schema.Schema, ctx Context) []*Node {
	if s == nil {
		return nil
	}

	if ctx.Unnamed {
		switch s.Type {
		case schema.TypeObject:
			req := ctx.Required
			if req.IsZero() {
				req = s.Required
			}
			return renderProperties(s.Properties, req, ctx.ID)
		case schema.TypeArray:
			return Render(s.Items, Named(ItemsName, false, childID(ctx.ID, ItemsName)))
		}
	}

	if s.Hidden {
		return nil
	}

	n := &Node{
		ID:          ctx.ID,
		Name:        ctx.Name,
		Type:        DisplayType(s),
		Required:    ctx.Required.Has(ctx.Name) || (s.Required.Flag && !s.Required.IsList()),
		Deprecated:  s.Deprecated,
		Description: s.Description,
		Default:     formatDefault(s.Default),
		Values:      formatValues(possibleValues(s)),
		Range:       formatRange(s),
	}
	if len(n.Values) == 0 && n.Range == "" && s.Example != nil && !isComposite(s.Example) {
		n.Example = formatJSON(s.Example)
	}

	renderItems(n, s.Items, ctx.ID)
	n.Properties = renderSubProperties(s, ctx.ID)
	n.Variants = renderVariants(s.OneOf, ctx.ID)
	return []*Node{n}
}

// renderProperties emits one node per property. required is resolved per
// child: list membership, or the boolean for every child.
func renderProperties(props []schema.Property, required schema.Required, id string) []*Node {
	var out []*Node
	for _, p := range props {
		out = append(out, Render(p.Schema, Named(p.Name, required.Has(p.Name), childID(id, p.Name)))...)
	}
	return out
}

// renderSubProperties lists additionalProperties as "*" followed by the
// declared properties.
func renderSubProperties(s *schema.Schema, id string) []*Node {
	if !s.HasProperties() && s.AdditionalProperties == nil {
		return nil
	}
	var out []*Node
	if s.AdditionalProperties != nil {
		out = append(out, Render(s.AdditionalProperties, Named(AdditionalName, false, childID(id, AdditionalName)))...)
	}
	return append(out, renderProperties(s.Properties, s.Required, id)...)
}

func renderItems(n *Node, items *schema.Schema, id string) {
	if items == nil || items.HasEnum() {
		return
	}
	if items.HasProperties() {
		n.ItemProperties = renderSubProperties(items, childID(id, ItemsName))
		return
	}
	if items.Example != nil {
		n.ItemsExample = formatJSON(items.Example)
	}
}

// renderVariants names each alternative after its type and clears that type
// for the alternative's own label, so "string: string" reads as "string".
func renderVariants(alternatives []*schema.Schema, id string) []*Node {
	var out []*Node
	for i, alt := range alternatives {
		if alt == nil {
			continue
		}
		name := alt.Type
		out = append(out, Render(alt.WithoutType(), Named(name, false, childID(id, strconv.Itoa(i))))...)
	}
	return out
}

// DisplayType returns the type label of s: alternatives joined by " | ",
// "<item type>[]" for arrays, otherwise format or type. Unknown types
// without a format have no label.
func DisplayType(s *schema.Schema) string {
	if s == nil {
		return ""
	}
	if len(s.OneOf) > 0 {
		labels := make([]string, 0, len(s.OneOf))
		for _, alt := range s.OneOf {
			labels = append(labels, DisplayType(alt))
		}
		return strings.Join(labels, " | ")
	}
	if s.Type == schema.TypeArray {
		if s.Items == nil {
			return schema.TypeArray
		}
		label := s.Items.Format
		if label == "" {
			label = s.Items.Type
		}
		label += "[]"
		if s.Items.HasEnum() {
			label += " (enum)"
		}
		return label
	}
	if s.Format != "" {
		return s.Format
	}
	if knownType(s.Type) {
		return s.Type
	}
	return ""
}

func knownType(t string) bool {
	switch t {
	case schema.TypeObject, schema.TypeArray, schema.TypeString, schema.TypeNumber,
		schema.TypeInteger, schema.TypeBoolean, schema.TypeNull, schema.TypeMap, schema.TypeFloat:
		return true
	}
	return false
}

// possibleValues returns Values, then Enum, then the enum of the items.
func possibleValues(s *schema.Schema) []any {
	switch {
	case s.Values != nil:
		return s.Values
	case s.Enum != nil:
		return s.Enum
	case s.Items != nil && s.Items.Enum != nil:
		return s.Items.Enum
	}
	return nil
}

func formatValues(values []any) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, formatJSON(v))
	}
	return out
}

func formatRange(s *schema.Schema) string {
	if !s.HasRange() {
		return ""
	}
	return fmt.Sprintf("[%s, %s]", formatNumber(*s.Minimum), formatNumber(*s.Maximum))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDefault(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, fmt.Sprint(schema.Plain(item)))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *schema.OrderedMap:
		return formatJSON(t)
	default:
		return fmt.Sprint(t)
	}
}

func formatJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func isComposite(v any) bool {
	switch v.(type) {
	case *schema.OrderedMap, map[string]any, []any:
		return true
	}
	return false
}

func childID(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "-" + name
}

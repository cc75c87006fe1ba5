package proptree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/schema"
)

func ptr(f float64) *float64 { return &f }

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func find(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func petSchema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: schema.RequiredNames("a", "b"),
		Properties: []schema.Property{
			{Name: "a", Schema: &schema.Schema{Type: "string", Description: "first"}},
			{Name: "b", Schema: &schema.Schema{Type: "integer", Minimum: ptr(1), Maximum: ptr(5)}},
			{Name: "c", Schema: &schema.Schema{Type: "string", Format: "date"}},
			{Name: "secret", Schema: &schema.Schema{Type: "string", Hidden: true}},
		},
	}
}

func TestRenderUnwrapsUnnamedObject(t *testing.T) {
	got := Render(petSchema(), Root("body"))

	want := []*Node{
		{ID: "body-a", Name: "a", Type: "string", Required: true, Description: "first"},
		{ID: "body-b", Name: "b", Type: "integer", Required: true, Range: "[1, 5]"},
		{ID: "body-c", Name: "c", Type: "date"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRequiredFromParentList(t *testing.T) {
	got := Render(petSchema(), Root(""))
	require.NotNil(t, find(got, "a"))
	assert.True(t, find(got, "a").Required)
	assert.False(t, find(got, "c").Required)
}

func TestRenderRequiredBooleanWrapper(t *testing.T) {
	s := &schema.Schema{
		Type: "object",
		Properties: []schema.Property{
			{Name: "x", Schema: &schema.Schema{Type: "string"}},
			{Name: "y", Schema: &schema.Schema{Type: "string"}},
		},
	}
	ctx := Root("")
	ctx.Required = schema.RequiredFlag(true)
	got := Render(s, ctx)
	require.Len(t, got, 2)
	assert.True(t, got[0].Required)
	assert.True(t, got[1].Required)
}

func TestRenderOwnRequiredFlag(t *testing.T) {
	s := &schema.Schema{Type: "string", Required: schema.RequiredFlag(true)}
	got := Render(s, Named("token", false, ""))
	require.Len(t, got, 1)
	assert.True(t, got[0].Required)
}

func TestRenderHiddenIsPrunedEverywhere(t *testing.T) {
	hidden := &schema.Schema{Type: "string", Hidden: true}
	s := &schema.Schema{
		Type: "object",
		Properties: []schema.Property{
			{Name: "outer", Schema: &schema.Schema{
				Type: "object",
				Properties: []schema.Property{
					{Name: "visible", Schema: &schema.Schema{Type: "string"}},
					{Name: "internal", Schema: hidden},
				},
			}},
			{Name: "internal", Schema: hidden},
		},
	}

	got := Render(s, Root(""))
	assert.Equal(t, []string{"outer"}, names(got))
	assert.Equal(t, []string{"visible"}, names(got[0].Properties))
	assert.Empty(t, Render(hidden, Named("internal", true, "")))
}

func TestRenderUnnamedArray(t *testing.T) {
	t.Run("items become []", func(t *testing.T) {
		s := &schema.Schema{
			Type: "array",
			Items: &schema.Schema{
				Type:       "object",
				Properties: []schema.Property{{Name: "id", Schema: &schema.Schema{Type: "integer"}}},
			},
		}
		got := Render(s, Root("list"))
		require.Len(t, got, 1)
		assert.Equal(t, ItemsName, got[0].Name)
		assert.Equal(t, "list-[]", got[0].ID)
		assert.Equal(t, []string{"id"}, names(got[0].Properties))
	})

	t.Run("no items emits nothing", func(t *testing.T) {
		assert.Empty(t, Render(&schema.Schema{Type: "array"}, Root("")))
	})
}

func TestDisplayType(t *testing.T) {
	tests := []struct {
		name   string
		schema *schema.Schema
		want   string
	}{
		{name: "nil", schema: nil, want: ""},
		{name: "plain", schema: &schema.Schema{Type: "string"}, want: "string"},
		{name: "format wins", schema: &schema.Schema{Type: "string", Format: "date"}, want: "date"},
		{name: "array without items", schema: &schema.Schema{Type: "array"}, want: "array"},
		{
			name:   "array of strings",
			schema: &schema.Schema{Type: "array", Items: &schema.Schema{Type: "string"}},
			want:   "string[]",
		},
		{
			name:   "array of enum strings",
			schema: &schema.Schema{Type: "array", Items: &schema.Schema{Type: "string", Enum: []any{"a", "b"}}},
			want:   "string[] (enum)",
		},
		{
			name:   "array item format wins",
			schema: &schema.Schema{Type: "array", Items: &schema.Schema{Type: "string", Format: "uuid"}},
			want:   "uuid[]",
		},
		{
			name: "union of labels",
			schema: &schema.Schema{OneOf: []*schema.Schema{
				{Type: "string"},
				{Type: "array", Items: &schema.Schema{Type: "integer"}},
				{Type: "object"},
			}},
			want: "string | integer[] | object",
		},
		{name: "vendor map", schema: &schema.Schema{Type: "map"}, want: "map"},
		{name: "unknown type has no label", schema: &schema.Schema{Type: "file"}, want: ""},
		{name: "unknown type with format", schema: &schema.Schema{Type: "file", Format: "binary"}, want: "binary"},
		{name: "untyped", schema: &schema.Schema{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayType(tt.schema))
		})
	}
}

func TestRenderConstraints(t *testing.T) {
	tests := []struct {
		name   string
		schema *schema.Schema
		want   *Node
	}{
		{
			name:   "values override enum",
			schema: &schema.Schema{Type: "string", Values: []any{"x"}, Enum: []any{"a", "b"}},
			want:   &Node{Name: "f", Type: "string", Values: []string{`"x"`}},
		},
		{
			name:   "enum",
			schema: &schema.Schema{Type: "string", Enum: []any{"a", "b"}, Example: "a"},
			want:   &Node{Name: "f", Type: "string", Values: []string{`"a"`, `"b"`}},
		},
		{
			name:   "items enum",
			schema: &schema.Schema{Type: "array", Items: &schema.Schema{Type: "string", Enum: []any{"red", int64(2)}}},
			want:   &Node{Name: "f", Type: "string[] (enum)", Values: []string{`"red"`, `2`}},
		},
		{
			name:   "range hides example",
			schema: &schema.Schema{Type: "number", Minimum: ptr(0.5), Maximum: ptr(10), Example: 3},
			want:   &Node{Name: "f", Type: "number", Range: "[0.5, 10]"},
		},
		{
			name:   "only one bound has no range",
			schema: &schema.Schema{Type: "number", Minimum: ptr(0), Example: 3},
			want:   &Node{Name: "f", Type: "number", Example: "3"},
		},
		{
			name:   "string example",
			schema: &schema.Schema{Type: "string", Example: "rex"},
			want:   &Node{Name: "f", Type: "string", Example: `"rex"`},
		},
		{
			name: "object example is not inlined",
			schema: &schema.Schema{Type: "string", Example: func() any {
				m := schema.NewOrderedMap()
				m.Set("k", "v")
				return m
			}()},
			want: &Node{Name: "f", Type: "string"},
		},
		{
			name:   "array example is not inlined",
			schema: &schema.Schema{Type: "string", Example: []any{"a"}},
			want:   &Node{Name: "f", Type: "string"},
		},
		{
			name:   "default scalar",
			schema: &schema.Schema{Type: "integer", Default: 10},
			want:   &Node{Name: "f", Type: "integer", Default: "10"},
		},
		{
			name:   "default list",
			schema: &schema.Schema{Type: "array", Items: &schema.Schema{Type: "string"}, Default: []any{"a", "b"}},
			want:   &Node{Name: "f", Type: "string[]", Default: "[a, b]"},
		},
		{
			name:   "deprecated",
			schema: &schema.Schema{Type: "boolean", Deprecated: true},
			want:   &Node{Name: "f", Type: "boolean", Deprecated: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.schema, Named("f", false, ""))
			require.Len(t, got, 1)
			if diff := cmp.Diff(tt.want, got[0]); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderSubProperties(t *testing.T) {
	s := &schema.Schema{
		Type:                 "object",
		Required:             schema.RequiredNames("id"),
		AdditionalProperties: &schema.Schema{Type: "string"},
		Properties: []schema.Property{
			{Name: "id", Schema: &schema.Schema{Type: "integer"}},
			{Name: "label", Schema: &schema.Schema{Type: "string"}},
		},
	}

	got := Render(s, Named("owner", true, "req"))
	require.Len(t, got, 1)
	owner := got[0]
	assert.True(t, owner.Required)
	assert.Equal(t, "object", owner.Type)

	want := []*Node{
		{ID: "req-*", Name: "*", Type: "string"},
		{ID: "req-id", Name: "id", Type: "integer", Required: true},
		{ID: "req-label", Name: "label", Type: "string"},
	}
	if diff := cmp.Diff(want, owner.Properties); diff != "" {
		t.Errorf("sub-properties mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, owner.HasChildren())
}

func TestRenderAdditionalPropertiesOnly(t *testing.T) {
	s := &schema.Schema{
		Type:                 "object",
		AdditionalProperties: &schema.Schema{Type: "integer"},
	}
	got := Render(s, Named("counts", false, ""))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"*"}, names(got[0].Properties))

	denied := &schema.Schema{Type: "object", AdditionalPropertiesDenied: true}
	got = Render(denied, Named("closed", false, ""))
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Properties)
	assert.False(t, got[0].HasChildren())
}

func TestRenderSubItems(t *testing.T) {
	t.Run("items with properties", func(t *testing.T) {
		s := &schema.Schema{
			Type: "array",
			Items: &schema.Schema{
				Type:     "object",
				Required: schema.RequiredNames("name"),
				Properties: []schema.Property{
					{Name: "name", Schema: &schema.Schema{Type: "string"}},
				},
			},
		}
		got := Render(s, Named("pets", false, "p"))
		require.Len(t, got, 1)
		assert.Equal(t, "object[]", got[0].Type)
		want := []*Node{{ID: "p-[]-name", Name: "name", Type: "string", Required: true}}
		if diff := cmp.Diff(want, got[0].ItemProperties); diff != "" {
			t.Errorf("item properties mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("items with example", func(t *testing.T) {
		s := &schema.Schema{Type: "array", Items: &schema.Schema{Type: "string", Example: "tag"}}
		got := Render(s, Named("tags", false, ""))
		require.Len(t, got, 1)
		assert.Equal(t, `"tag"`, got[0].ItemsExample)
		assert.Empty(t, got[0].ItemProperties)
	})

	t.Run("enum items render nothing extra", func(t *testing.T) {
		s := &schema.Schema{Type: "array", Items: &schema.Schema{
			Type:       "object",
			Enum:       []any{"a"},
			Example:    "a",
			Properties: []schema.Property{{Name: "x", Schema: &schema.Schema{Type: "string"}}},
		}}
		got := Render(s, Named("e", false, ""))
		require.Len(t, got, 1)
		assert.Empty(t, got[0].ItemProperties)
		assert.Empty(t, got[0].ItemsExample)
	})
}

func TestRenderOneOf(t *testing.T) {
	s := &schema.Schema{
		Description: "id or object",
		OneOf: []*schema.Schema{
			{Type: "string", Format: "uuid"},
			{Type: "object", Properties: []schema.Property{
				{Name: "id", Schema: &schema.Schema{Type: "string"}},
			}},
			{Description: "untyped"},
		},
	}

	got := Render(s, Named("ref", false, "x"))
	require.Len(t, got, 1)
	assert.Equal(t, "uuid | object | ", got[0].Type)

	variants := got[0].Variants
	require.Len(t, variants, 3)
	assert.Equal(t, "string", variants[0].Name)
	assert.Equal(t, "uuid", variants[0].Type)
	assert.Equal(t, "object", variants[1].Name)
	assert.Equal(t, "", variants[1].Type)
	assert.Equal(t, []string{"id"}, names(variants[1].Properties))
	assert.Equal(t, "", variants[2].Name)
	assert.Equal(t, "untyped", variants[2].Description)

	// The alternatives themselves keep their type.
	assert.Equal(t, "string", s.OneOf[0].Type)
	assert.Equal(t, "object", s.OneOf[1].Type)
}

func TestRenderNil(t *testing.T) {
	assert.Nil(t, Render(nil, Root("")))
	assert.Nil(t, Render(nil, Named("x", true, "")))
}

func TestRenderUntypedNamed(t *testing.T) {
	got := Render(&schema.Schema{Description: "anything"}, Named("blob", false, ""))
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Type)
	assert.Equal(t, "anything", got[0].Description)
}

package example

import "github.com/erraggy/oasdocs/schema"

// BuildExamples assembles the example set of one media type entry using the
// default generator. See [Generator.BuildExamples].
func BuildExamples(mt *schema.MediaType) *Examples {
	return defaultGenerator.BuildExamples(mt)
}

// BuildExamples assembles the example set of one media type entry.
//
// Named examples are copied verbatim in declaration order. When the media
// type declares none, the set holds a single generated entry under
// SchemaKey; when it declares some, no generated entry is added. A nil media
// type yields nil, anything else yields at least one entry.
func (g Generator) BuildExamples(mt *schema.MediaType) *Examples {
	if mt == nil {
		return nil
	}
	out := newExamples()
	for _, ex := range mt.Examples {
		out.entries.Set(ex.Name, ex.Value)
	}
	if !mt.HasExamples() {
		out.entries.Set(SchemaKey, g.Generate(mt.Schema))
	}
	return out
}

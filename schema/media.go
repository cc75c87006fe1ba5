package schema

// MediaTypeJSON is the content type whose entries drive examples and trees.
const MediaTypeJSON = "application/json"

// NamedExample is an author-curated entry of an OpenAPI examples map.
type NamedExample struct {
	Name        string
	Summary     string
	Description string
	Value       any
}

// MediaType is one entry of a request or response content map.
type MediaType struct {
	Schema *Schema
	// Examples keeps declaration order.
	Examples []NamedExample
}

// HasExamples reports whether the media type declares at least one
// named example.
func (m *MediaType) HasExamples() bool {
	return m != nil && len(m.Examples) > 0
}

package example

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasdocs/schema"
)

// SchemaKey is the reserved name of the generated example.
const SchemaKey = "schema"

// Examples maps example names to values in declaration order.
// Author examples come first; the generated entry, when present, is stored
// under SchemaKey.
type Examples struct {
	entries *schema.OrderedMap
}

func newExamples() *Examples {
	return &Examples{entries: schema.NewOrderedMap()}
}

// Get returns the value stored under name.
func (e *Examples) Get(name string) (any, bool) {
	if e == nil {
		return nil, false
	}
	return e.entries.Get(name)
}

// Names returns the example names in order.
func (e *Examples) Names() []string {
	if e == nil {
		return nil
	}
	return e.entries.Keys()
}

// Len returns the number of examples.
func (e *Examples) Len() int {
	if e == nil {
		return 0
	}
	return e.entries.Len()
}

// First returns the name and value of the first example. This is the value
// a playground pre-fills its body editor with.
func (e *Examples) First() (string, any, bool) {
	names := e.Names()
	if len(names) == 0 {
		return "", nil, false
	}
	v, _ := e.entries.Get(names[0])
	return names[0], v, true
}

// Synthetic returns the generated example, if the set carries one.
func (e *Examples) Synthetic() (any, bool) {
	return e.Get(SchemaKey)
}

// Map returns the examples as an ordered map.
func (e *Examples) Map() *schema.OrderedMap {
	if e == nil {
		return nil
	}
	return e.entries
}

// MarshalJSON writes the examples as an ordered JSON object.
func (e *Examples) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return e.entries.MarshalJSON()
}

// MarshalYAML writes the examples as an ordered YAML mapping.
func (e *Examples) MarshalYAML() (any, error) {
	if e == nil {
		return nil, nil
	}
	return e.entries.MarshalYAML()
}

// Label returns the display label of an example name. The generated entry is
// shown as "Schema"; author names are shown as written.
func Label(name string) string {
	if name == SchemaKey {
		return cases.Title(language.English).String(name)
	}
	return name
}

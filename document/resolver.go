package document

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/internal/schemautil"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/schema"
)

// resolver dereferences local JSON pointers ("#/components/...") within a
// single document tree. Referenced schemas are decoded once and shared.
type resolver struct {
	root     *yaml.Node
	source   string
	maxDepth int
	log      Logger
	// strict makes circular schema references fatal.
	strict bool
	// circular records the refs cut short by a cycle, in discovery order.
	circular []string

	pointers map[string]*yaml.Node
	schemas  map[string]*schema.Schema
	// active holds the schema refs being decoded, outermost first.
	active []string
}

func newResolver(root *yaml.Node, source string, maxDepth int, log Logger) *resolver {
	return &resolver{
		root:     root,
		source:   source,
		maxDepth: maxDepth,
		log:      log,
		pointers: make(map[string]*yaml.Node),
		schemas:  make(map[string]*schema.Schema),
	}
}

// refOf returns the $ref of a reference object.
func refOf(n *yaml.Node) (string, bool) {
	n = unalias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return "", false
	}
	v := mappingValue(n, "$ref")
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

func refType(ref string) string {
	switch {
	case strings.HasPrefix(ref, "#"):
		return "local"
	case isURL(ref):
		return "http"
	}
	return "file"
}

// lookup returns the node a local ref points at.
func (r *resolver) lookup(ref string) (*yaml.Node, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType(ref),
			Message: "only local references are supported",
		}
	}
	if n, ok := r.pointers[ref]; ok {
		return n, nil
	}

	n := r.root
	pointer := strings.TrimPrefix(ref, "#")
	if pointer != "" {
		if !strings.HasPrefix(pointer, "/") {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "local", Message: "invalid JSON pointer"}
		}
		for _, token := range strings.Split(pointer[1:], "/") {
			key, err := unescapePointerToken(token)
			if err != nil {
				return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "local", Message: "invalid JSON pointer", Cause: err}
			}
			n = unalias(n)
			switch {
			case n == nil:
			case n.Kind == yaml.MappingNode:
				n = mappingValue(n, key)
			case n.Kind == yaml.SequenceNode:
				i, convErr := strconv.Atoi(key)
				if convErr != nil || i < 0 || i >= len(n.Content) {
					n = nil
				} else {
					n = n.Content[i]
				}
			default:
				n = nil
			}
			if n == nil {
				return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "local", Message: "target not found"}
			}
		}
	}

	r.pointers[ref] = n
	return n, nil
}

// unescapePointerToken decodes percent-encoding, then "~1" and "~0".
func unescapePointerToken(token string) (string, error) {
	decoded, err := url.PathUnescape(token)
	if err != nil {
		return "", err
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(decoded), nil
}

// deref follows a chain of reference objects to the first non-reference
// node. Used for parameters, request bodies, responses and examples.
func (r *resolver) deref(n *yaml.Node) (*yaml.Node, error) {
	var chain []string
	for {
		n = unalias(n)
		ref, ok := refOf(n)
		if !ok {
			return n, nil
		}
		if slices.Contains(chain, ref) {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				RefType:    "local",
				IsCircular: true,
				Chain:      append(chain, ref),
			}
		}
		if len(chain) >= r.maxDepth {
			return nil, r.depthError(len(chain) + 1)
		}
		chain = append(chain, ref)

		target, err := r.lookup(ref)
		if err != nil {
			return nil, err
		}
		n = target
	}
}

// schema decodes the schema at n, resolving references. A reference to a
// schema that is still being decoded is a cycle: it becomes a placeholder
// from [circularPlaceholder], or an error in strict mode.
func (r *resolver) schema(n *yaml.Node) (*schema.Schema, error) {
	n = unalias(n)
	if n == nil {
		return nil, nil
	}
	ref, ok := refOf(n)
	if !ok {
		return r.decodeSchema(n)
	}

	if cached, found := r.schemas[ref]; found {
		return cached, nil
	}
	if i := slices.Index(r.active, ref); i >= 0 {
		chain := append(slices.Clone(r.active[i:]), ref)
		if r.strict {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				RefType:    "local",
				IsCircular: true,
				Chain:      chain,
			}
		}
		if !slices.Contains(r.circular, ref) {
			r.circular = append(r.circular, ref)
		}
		r.log.Warn("circular schema reference not expanded", "ref", ref, "chain", strings.Join(chain, " -> "))
		return r.circularPlaceholder(ref), nil
	}
	if len(r.active) >= r.maxDepth {
		return nil, r.depthError(len(r.active) + 1)
	}

	target, err := r.lookup(ref)
	if err != nil {
		return nil, err
	}

	r.active = append(r.active, ref)
	s, err := r.schema(target)
	r.active = r.active[:len(r.active)-1]
	if err != nil {
		return nil, err
	}

	r.schemas[ref] = s
	r.log.Debug("resolved schema reference", "ref", ref, "depth", len(r.active)+1)
	return s, nil
}

// circularPlaceholder stands in for a schema that is already being expanded.
// It keeps only the target's declared type, so it labels as "object" and
// generates as an empty value of that type.
func (r *resolver) circularPlaceholder(ref string) *schema.Schema {
	s := &schema.Schema{Description: "Circular reference to " + ref + "."}
	target, err := r.lookup(ref)
	if err != nil {
		return s
	}
	if target = unalias(target); target != nil && target.Kind == yaml.MappingNode {
		if t := unalias(mappingValue(target, "type")); t != nil {
			if v, err := r.value(t); err == nil {
				s.Type = schemautil.PrimaryType(v)
			}
		}
	}
	return s
}

func (r *resolver) depthError(actual int) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "ref_depth",
		Limit:        int64(r.maxDepth),
		Actual:       int64(actual),
		Message:      r.source,
	}
}

func unalias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return unalias(n.Content[0])
	}
	return n
}

// mappingValue returns the value of key in mapping node n.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

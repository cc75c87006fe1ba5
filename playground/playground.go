// Package playground builds the "try it out" request of an operation: the
// target URL with path and query parameters substituted, and an equivalent
// curl command.
package playground

import (
	"fmt"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/example"
	"github.com/erraggy/oasdocs/internal/httputil"
	"github.com/erraggy/oasdocs/schema"
)

// Param is a path or query parameter value. Query parameters with several
// values repeat the key; path parameters join them with ",".
type Param struct {
	Name   string
	In     string
	Values []string
}

// Header is a request header.
type Header struct {
	Name  string
	Value string
}

// RequestTemplate describes one request ready to be sent.
type RequestTemplate struct {
	Method  string
	BaseURL string
	// Path is the path template, e.g. "/pets/{petId}".
	Path    string
	Params  []Param
	Headers []Header
	// Body is the payload value, encoded for ContentType by EncodedBody.
	// Nil sends no body.
	Body any
	// ContentType is the media type Body is sent as. Empty means JSON.
	ContentType string
}

// Option customizes FromOperation.
type Option func(*config)

type config struct {
	generator example.Generator
	example   string
	overrides map[string][]string
}

// WithGenerator sets the generator used for the synthetic body example.
func WithGenerator(g example.Generator) Option {
	return func(c *config) { c.generator = g }
}

// WithExample selects the named request example used as the body.
// Unknown names fall back to the first example.
func WithExample(name string) Option {
	return func(c *config) { c.example = name }
}

// WithParam sets the value(s) of a parameter, replacing its default.
// A plain name applies to every parameter of that name; "in:name", such as
// "query:id" or "path:id", applies to one location only and wins over the
// plain form.
func WithParam(name string, values ...string) Option {
	return func(c *config) {
		if c.overrides == nil {
			c.overrides = make(map[string][]string)
		}
		c.overrides[name] = values
	}
}

// FromOperation returns the request template of op against server.
// Parameter values come from overrides, then the parameter example, then
// the schema default, then the schema example. The body is the first
// request example of the operation, for methods that carry a body and
// when the preferred media type is JSON, a URL-encoded form or text.
func FromOperation(op *document.Operation, server string, opts ...Option) *RequestTemplate {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &RequestTemplate{
		Method:  strings.ToUpper(op.Method),
		BaseURL: server,
		Path:    op.Path,
	}
	for _, p := range op.Parameters {
		values, ok := cfg.overrides[p.In+":"+p.Name]
		if !ok {
			values, ok = cfg.overrides[p.Name]
		}
		if !ok {
			values = parameterValues(p)
		}
		switch p.In {
		case document.InPath, document.InQuery:
			t.Params = append(t.Params, Param{Name: p.Name, In: p.In, Values: values})
		case document.InHeader:
			if len(values) > 0 {
				t.Headers = append(t.Headers, Header{Name: p.Name, Value: strings.Join(values, ",")})
			}
		}
	}

	if httputil.HasBody(op.Method) && op.RequestBody != nil {
		content := document.PreferredContent(op.RequestBody.Content)
		if content != nil && encodable(content.MediaType) {
			if examples := cfg.generator.BuildExamples(content.Media); examples != nil {
				body, found := examples.Get(cfg.example)
				if !found {
					_, body, _ = examples.First()
				}
				if body != nil {
					t.Body = body
					t.ContentType = content.MediaType
					t.Headers = append(t.Headers, Header{Name: "Content-Type", Value: content.MediaType})
				}
			}
		}
	}
	return t
}

// encodable reports whether a body of mediaType can be written from an
// example value.
func encodable(mediaType string) bool {
	return httputil.IsJSONMediaType(mediaType) || httputil.IsFormMediaType(mediaType) || httputil.IsTextMediaType(mediaType)
}

func parameterValues(p *document.Parameter) []string {
	switch {
	case p.Example != nil:
		return formatValues(p.Example)
	case p.Schema != nil && p.Schema.Default != nil:
		return formatValues(p.Schema.Default)
	case p.Schema != nil && p.Schema.Example != nil:
		return formatValues(p.Schema.Example)
	}
	return nil
}

func formatValues(v any) []string {
	if list, ok := v.([]any); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, formatValue(item))
		}
		return out
	}
	return []string{formatValue(v)}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case *schema.OrderedMap, map[string]any:
		data, err := json.Marshal(t)
		if err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}

// URL returns the target URL. Path parameters replace their "{name}"
// placeholder; placeholders without a value are left in place.
func (t *RequestTemplate) URL() (*url.URL, error) {
	return BuildURL(t.BaseURL, t.Path, t.Params)
}

// BuildURL joins server and path, substitutes path parameters and encodes
// query parameters.
func BuildURL(server, path string, params []Param) (*url.URL, error) {
	cleanPath := path
	query := url.Values{}
	for _, p := range params {
		if len(p.Values) == 0 {
			continue
		}
		switch p.In {
		case document.InQuery:
			for _, v := range p.Values {
				query.Add(p.Name, v)
			}
		case document.InPath:
			escaped := make([]string, 0, len(p.Values))
			for _, v := range p.Values {
				escaped = append(escaped, url.PathEscape(v))
			}
			cleanPath = strings.ReplaceAll(cleanPath, "{"+p.Name+"}", strings.Join(escaped, ","))
		}
	}

	target, err := url.Parse(strings.TrimSuffix(server, "/") + cleanPath)
	if err != nil {
		return nil, fmt.Errorf("playground: invalid URL: %w", err)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target, nil
}

// Curl returns the request as a curl command, one option per line.
func (t *RequestTemplate) Curl() (string, error) {
	target, err := t.URL()
	if err != nil {
		return "", err
	}

	lines := []string{
		"curl --request " + strings.ToUpper(t.Method),
		"--url " + shellQuote(target.String()),
	}
	for _, h := range t.Headers {
		lines = append(lines, "--header "+shellQuote(h.Name+": "+h.Value))
	}
	if t.Body != nil {
		data, err := t.EncodedBody()
		if err != nil {
			return "", err
		}
		lines = append(lines, "--data "+shellQuote(data))
	}
	return strings.Join(lines, " \\\n  "), nil
}

// EncodedBody returns Body encoded for ContentType: indented JSON, a
// URL-encoded form of the top-level fields in order, or the plain value for
// text types. A nil Body encodes as "".
func (t *RequestTemplate) EncodedBody() (string, error) {
	if t.Body == nil {
		return "", nil
	}
	switch {
	case httputil.IsFormMediaType(t.ContentType):
		return encodeForm(t.Body)
	case httputil.IsTextMediaType(t.ContentType):
		if s, ok := t.Body.(string); ok {
			return s, nil
		}
		return formatValue(t.Body), nil
	}
	data, err := json.MarshalIndent(t.Body, "", "  ")
	if err != nil {
		return "", fmt.Errorf("playground: encoding body: %w", err)
	}
	return string(data), nil
}

// encodeForm writes an object as "a=1&b=2", repeating keys for arrays.
// Nested objects are sent as JSON text.
func encodeForm(body any) (string, error) {
	m, ok := body.(*schema.OrderedMap)
	if !ok {
		return "", fmt.Errorf("playground: form body must be an object, got %T", body)
	}
	var parts []string
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v == nil {
			continue
		}
		for _, value := range formatValues(v) {
			parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
		}
	}
	return strings.Join(parts, "&"), nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

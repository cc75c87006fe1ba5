package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/internal/httputil"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/schema"
)

// Document is a dereferenced OpenAPI 3.x document reduced to what API
// reference pages need. Paths, operations, responses and content entries
// keep their document order.
type Document struct {
	// OpenAPI is the value of the "openapi" field, e.g. "3.0.3".
	OpenAPI     string
	Title       string
	Version     string
	Description string
	Servers     []Server
	Paths       []*PathItem

	// CircularRefs lists the schema refs whose expansion was cut short
	// because they refer back to themselves.
	CircularRefs []string

	SourcePath   string
	SourceFormat SourceFormat
	SourceSize   int64
	LoadTime     time.Duration
}

// Server is an entry of the servers list.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem holds the operations of one path template.
type PathItem struct {
	Path       string
	Operations []*Operation
}

// Operation is one path + method pair.
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	// Parameters merges path-level and operation-level parameters.
	// Operation-level entries replace path-level ones with the same name and location.
	Parameters  []*Parameter
	RequestBody *RequestBody
	Responses   []*Response
}

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// Parameter is a dereferenced parameter object.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Deprecated  bool
	Schema      *schema.Schema
	Example     any
}

// DisplaySchema returns the parameter schema with the parameter description
// filled in when the schema has none. The parameter's own schema is not modified.
func (p *Parameter) DisplaySchema() *schema.Schema {
	if p.Schema == nil {
		if p.Description == "" {
			return nil
		}
		return &schema.Schema{Description: p.Description, Deprecated: p.Deprecated}
	}
	if (p.Schema.Description != "" || p.Description == "") && (p.Schema.Deprecated || !p.Deprecated) {
		return p.Schema
	}
	c := *p.Schema
	if c.Description == "" {
		c.Description = p.Description
	}
	c.Deprecated = c.Deprecated || p.Deprecated
	return &c
}

// Content is one entry of a content map.
type Content struct {
	MediaType string
	Media     *schema.MediaType
}

// RequestBody is a dereferenced request body object.
type RequestBody struct {
	Description string
	Required    bool
	Content     []*Content
}

// Response is one entry of an operation's responses.
type Response struct {
	Code        string
	Description string
	Content     []*Content
}

// Load reads and dereferences an OpenAPI 3.x document.
//
// Example:
//
//	doc, err := document.Load(document.WithFilePath("openapi.yaml"))
func Load(opts ...Option) (*Document, error) {
	return LoadContext(context.Background(), opts...)
}

// LoadContext is like Load; ctx bounds fetching URL sources.
func LoadContext(ctx context.Context, opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("document: invalid options: %w", err)
	}

	start := time.Now()
	data, name, err := readSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log := cfg.logger.With("source", name)

	doc, err := parse(data, name, cfg, log)
	if err != nil {
		log.Error("load failed", "error", err)
		return nil, err
	}
	doc.SourceSize = int64(len(data))
	doc.LoadTime = time.Since(start)
	log.Info("document loaded",
		"openapi", doc.OpenAPI,
		"paths", len(doc.Paths),
		"operations", len(doc.Operations()),
		"duration", doc.LoadTime)
	return doc, nil
}

func parse(data []byte, name string, cfg *loadConfig, log Logger) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "invalid YAML or JSON", Cause: err}
	}
	top := unalias(&root)
	if top == nil || top.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{Path: name, Message: "document must be an object"}
	}

	r := newResolver(top, name, cfg.maxRefDepth, log)
	r.strict = cfg.strictRefs
	doc := &Document{SourcePath: name, SourceFormat: detectFormat(data)}

	version := mappingValue(top, "openapi")
	switch {
	case version != nil && strings.HasPrefix(version.Value, "3."):
		doc.OpenAPI = version.Value
	case version != nil:
		return nil, r.parseError(version, fmt.Sprintf("unsupported OpenAPI version %q", version.Value))
	case mappingValue(top, "swagger") != nil:
		return nil, &oaserrors.ParseError{Path: name, Message: "Swagger 2.0 documents are not supported; convert to OpenAPI 3 first"}
	default:
		return nil, &oaserrors.ParseError{Path: name, Message: `missing "openapi" field`}
	}

	if info := unalias(mappingValue(top, "info")); info != nil && info.Kind == yaml.MappingNode {
		doc.Title = scalarValue(info, "title")
		doc.Version = scalarValue(info, "version")
		doc.Description = scalarValue(info, "description")
	}

	if servers := unalias(mappingValue(top, "servers")); servers != nil && servers.Kind == yaml.SequenceNode {
		for _, s := range servers.Content {
			s = unalias(s)
			if s.Kind != yaml.MappingNode {
				continue
			}
			doc.Servers = append(doc.Servers, Server{URL: scalarValue(s, "url"), Description: scalarValue(s, "description")})
		}
	}

	paths := unalias(mappingValue(top, "paths"))
	if paths == nil {
		return doc, nil
	}
	if paths.Kind != yaml.MappingNode {
		return nil, r.parseError(paths, "paths must be an object")
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		if !strings.HasPrefix(path, "/") {
			continue
		}
		item, err := r.pathItem(path, paths.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("document: path %s: %w", path, err)
		}
		doc.Paths = append(doc.Paths, item)
	}
	doc.CircularRefs = r.circular
	return doc, nil
}

func (r *resolver) pathItem(path string, n *yaml.Node) (*PathItem, error) {
	n, err := r.deref(n)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "path item must be an object")
	}

	var shared []*Parameter
	if params := mappingValue(n, "parameters"); params != nil {
		if shared, err = r.parameters(params); err != nil {
			return nil, err
		}
	}

	item := &PathItem{Path: path}
	for i := 0; i+1 < len(n.Content); i += 2 {
		method, ok := httputil.NormalizeMethod(n.Content[i].Value)
		if !ok || method != n.Content[i].Value {
			continue
		}
		op, err := r.operation(path, method, shared, n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToUpper(method), err)
		}
		item.Operations = append(item.Operations, op)
	}
	return item, nil
}

func (r *resolver) operation(path, method string, shared []*Parameter, n *yaml.Node) (*Operation, error) {
	n = unalias(n)
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "operation must be an object")
	}
	op := &Operation{
		Path:        path,
		Method:      method,
		OperationID: scalarValue(n, "operationId"),
		Summary:     scalarValue(n, "summary"),
		Description: scalarValue(n, "description"),
		Deprecated:  isTrue(mappingValue(n, "deprecated")),
	}
	if tags := unalias(mappingValue(n, "tags")); tags != nil && tags.Kind == yaml.SequenceNode {
		for _, t := range tags.Content {
			op.Tags = append(op.Tags, unalias(t).Value)
		}
	}

	var own []*Parameter
	if params := mappingValue(n, "parameters"); params != nil {
		var err error
		if own, err = r.parameters(params); err != nil {
			return nil, err
		}
	}
	op.Parameters = mergeParameters(shared, own)

	if body := mappingValue(n, "requestBody"); body != nil {
		rb, err := r.requestBody(body)
		if err != nil {
			return nil, fmt.Errorf("requestBody: %w", err)
		}
		op.RequestBody = rb
	}

	if responses := unalias(mappingValue(n, "responses")); responses != nil && responses.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(responses.Content); i += 2 {
			code := responses.Content[i].Value
			if !httputil.ValidateStatusCode(code) {
				if !strings.HasPrefix(code, "x-") {
					r.log.Warn("skipping invalid response code", "path", path, "method", method, "code", code)
				}
				continue
			}
			resp, err := r.response(code, responses.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("response %s: %w", code, err)
			}
			op.Responses = append(op.Responses, resp)
		}
	}
	return op, nil
}

func (r *resolver) parameters(n *yaml.Node) ([]*Parameter, error) {
	n = unalias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, r.parseError(n, "parameters must be a list")
	}
	out := make([]*Parameter, 0, len(n.Content))
	for _, item := range n.Content {
		p, err := r.parameter(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *resolver) parameter(n *yaml.Node) (*Parameter, error) {
	n, err := r.deref(n)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "parameter must be an object")
	}
	p := &Parameter{
		Name:        scalarValue(n, "name"),
		In:          scalarValue(n, "in"),
		Description: scalarValue(n, "description"),
		Required:    isTrue(mappingValue(n, "required")),
		Deprecated:  isTrue(mappingValue(n, "deprecated")),
	}
	if p.Name == "" {
		return nil, r.parseError(n, "parameter has no name")
	}
	// Path parameters are always required.
	if p.In == InPath {
		p.Required = true
	}
	if s := mappingValue(n, "schema"); s != nil {
		if p.Schema, err = r.schema(s); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
	}
	if ex := mappingValue(n, "example"); ex != nil {
		if p.Example, err = r.value(ex); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// mergeParameters keeps path-level parameters in order, replacing those
// the operation redefines, and appends the operation's remaining ones.
func mergeParameters(shared, own []*Parameter) []*Parameter {
	if len(shared) == 0 {
		return own
	}
	key := func(p *Parameter) string { return p.In + "\x00" + p.Name }
	overrides := make(map[string]*Parameter, len(own))
	for _, p := range own {
		overrides[key(p)] = p
	}
	out := make([]*Parameter, 0, len(shared)+len(own))
	used := make(map[string]bool, len(own))
	for _, p := range shared {
		if o, ok := overrides[key(p)]; ok {
			out = append(out, o)
			used[key(p)] = true
			continue
		}
		out = append(out, p)
	}
	for _, p := range own {
		if !used[key(p)] {
			out = append(out, p)
		}
	}
	return out
}

func (r *resolver) requestBody(n *yaml.Node) (*RequestBody, error) {
	n, err := r.deref(n)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "request body must be an object")
	}
	rb := &RequestBody{
		Description: scalarValue(n, "description"),
		Required:    isTrue(mappingValue(n, "required")),
	}
	rb.Content, err = r.content(mappingValue(n, "content"))
	return rb, err
}

func (r *resolver) response(code string, n *yaml.Node) (*Response, error) {
	n, err := r.deref(n)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "response must be an object")
	}
	resp := &Response{Code: code, Description: scalarValue(n, "description")}
	resp.Content, err = r.content(mappingValue(n, "content"))
	return resp, err
}

func (r *resolver) content(n *yaml.Node) ([]*Content, error) {
	n = unalias(n)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "content must be an object")
	}
	out := make([]*Content, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		mt, err := r.mediaType(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Content[i].Value, err)
		}
		out = append(out, &Content{MediaType: n.Content[i].Value, Media: mt})
	}
	return out, nil
}

func (r *resolver) mediaType(n *yaml.Node) (*schema.MediaType, error) {
	n = unalias(n)
	if n.Kind != yaml.MappingNode {
		return nil, r.parseError(n, "media type must be an object")
	}
	mt := &schema.MediaType{}
	var err error
	if s := mappingValue(n, "schema"); s != nil {
		if mt.Schema, err = r.schema(s); err != nil {
			return nil, err
		}
	}

	examples := unalias(mappingValue(n, "examples"))
	if examples == nil || examples.Kind != yaml.MappingNode {
		return mt, nil
	}
	mt.Examples = make([]schema.NamedExample, 0, len(examples.Content)/2)
	for i := 0; i+1 < len(examples.Content); i += 2 {
		ex, err := r.deref(examples.Content[i+1])
		if err != nil {
			return nil, err
		}
		named := schema.NamedExample{Name: examples.Content[i].Value}
		if ex.Kind == yaml.MappingNode {
			named.Summary = scalarValue(ex, "summary")
			named.Description = scalarValue(ex, "description")
			if v := mappingValue(ex, "value"); v != nil {
				if named.Value, err = r.value(v); err != nil {
					return nil, err
				}
			}
		}
		mt.Examples = append(mt.Examples, named)
	}
	return mt, nil
}

func scalarValue(n *yaml.Node, key string) string {
	v := unalias(mappingValue(n, key))
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

// Operations returns every operation in document order.
func (d *Document) Operations() []*Operation {
	var out []*Operation
	for _, p := range d.Paths {
		out = append(out, p.Operations...)
	}
	return out
}

// PathItem returns the path item for a path template, or nil.
func (d *Document) PathItem(path string) *PathItem {
	for _, p := range d.Paths {
		if p.Path == path {
			return p
		}
	}
	return nil
}

// Operation returns the operation at path and method. The method is matched
// case-insensitively. A missing operation is an *oaserrors.OperationError.
func (d *Document) Operation(path, method string) (*Operation, error) {
	m, _ := httputil.NormalizeMethod(method)
	item := d.PathItem(path)
	if item == nil {
		return nil, &oaserrors.OperationError{Path: path, Method: m}
	}
	known := make([]string, 0, len(item.Operations))
	for _, op := range item.Operations {
		if op.Method == m {
			return op, nil
		}
		known = append(known, strings.ToUpper(op.Method))
	}
	return nil, &oaserrors.OperationError{Path: path, Method: m, Known: known}
}

// OperationByID returns the operation with the given operationId.
func (d *Document) OperationByID(id string) (*Operation, bool) {
	for _, op := range d.Operations() {
		if op.OperationID == id {
			return op, true
		}
	}
	return nil, false
}

// ServerURL returns the first server URL, or "" when none is declared.
func (d *Document) ServerURL() string {
	if len(d.Servers) == 0 {
		return ""
	}
	return d.Servers[0].URL
}

// RequestContent returns the JSON media type of the request body, falling
// back to the first content entry. Nil when there is no request body.
func (o *Operation) RequestContent() *schema.MediaType {
	if o == nil || o.RequestBody == nil {
		return nil
	}
	return pickContent(o.RequestBody.Content)
}

// ParametersIn returns the parameters at one location, in order.
func (o *Operation) ParametersIn(in string) []*Parameter {
	var out []*Parameter
	for _, p := range o.Parameters {
		if p.In == in {
			out = append(out, p)
		}
	}
	return out
}

// Response returns the response for an exact code such as "200" or
// "default", or nil.
func (o *Operation) Response(code string) *Response {
	for _, r := range o.Responses {
		if r.Code == code {
			return r
		}
	}
	return nil
}

// SuccessResponse returns the first 2xx response, else the default
// response, else nil.
func (o *Operation) SuccessResponse() *Response {
	for _, r := range o.Responses {
		if httputil.IsSuccessCode(r.Code) {
			return r
		}
	}
	return o.Response(httputil.DefaultResponse)
}

// JSONContent returns the JSON media type of the response, falling back to
// the first content entry.
func (r *Response) JSONContent() *schema.MediaType {
	if r == nil {
		return nil
	}
	return pickContent(r.Content)
}

// PreferredContent returns the JSON entry of a content map, falling back
// to the first entry. Nil when content is empty.
func PreferredContent(content []*Content) *Content {
	for _, c := range content {
		if httputil.IsJSONMediaType(c.MediaType) {
			return c
		}
	}
	if len(content) > 0 {
		return content[0]
	}
	return nil
}

func pickContent(content []*Content) *schema.MediaType {
	if c := PreferredContent(content); c != nil {
		return c.Media
	}
	return nil
}

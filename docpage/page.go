// Package docpage assembles the reference page of a single API operation.
//
// A [Page] combines the parameter listings, the request body tree and its
// examples, the responses, and a ready-to-run curl command. Pages can be
// serialized as JSON or YAML, or rendered to Markdown with [Page.Markdown].
//
//	doc, _ := document.Load(document.WithFilePath("openapi.yaml"))
//	page, err := docpage.Build(doc, "/pets", "post")
//	if err != nil {
//		return err
//	}
//	md, err := page.Markdown()
package docpage

import (
	"fmt"

	json "github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/example"
	"github.com/erraggy/oasdocs/playground"
	"github.com/erraggy/oasdocs/proptree"
	"github.com/erraggy/oasdocs/schema"
)

// parameterOrder is the order in which parameter groups are listed.
var parameterOrder = []string{
	document.InPath,
	document.InQuery,
	document.InHeader,
	document.InCookie,
}

// Page is the documentation view of one operation.
type Page struct {
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	OperationID string   `json:"operation_id,omitempty" yaml:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	ServerURL   string   `json:"server_url,omitempty" yaml:"server_url,omitempty"`

	Parameters  []ParameterGroup `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *Body            `json:"request_body,omitempty" yaml:"request_body,omitempty"`
	Responses   []Response       `json:"responses,omitempty" yaml:"responses,omitempty"`

	// Curl is the playground request as a curl command.
	Curl string `json:"curl" yaml:"curl"`
}

// ParameterGroup lists the parameters at one location.
type ParameterGroup struct {
	In     string           `json:"in" yaml:"in"`
	Title  string           `json:"title" yaml:"title"`
	Fields []*proptree.Node `json:"fields" yaml:"fields"`
}

// Body documents a request or response payload.
type Body struct {
	MediaType   string           `json:"media_type,omitempty" yaml:"media_type,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Fields      []*proptree.Node `json:"fields,omitempty" yaml:"fields,omitempty"`
	Examples    []Example        `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Example is one rendered body example.
type Example struct {
	Name    string `json:"name" yaml:"name"`
	Label   string `json:"label" yaml:"label"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	// JSON is the example value indented with two spaces.
	JSON string `json:"json" yaml:"json"`
}

// Response documents one response code.
type Response struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Body        *Body  `json:"body,omitempty" yaml:"body,omitempty"`
}

// Option configures page assembly.
type Option func(*config)

type config struct {
	generator example.Generator
	serverURL string
	hasServer bool
}

// WithGenerator sets the generator used for synthetic examples.
func WithGenerator(g example.Generator) Option {
	return func(c *config) { c.generator = g }
}

// WithServerURL sets the base URL of the curl command. Defaults to the
// first server of the document.
func WithServerURL(url string) Option {
	return func(c *config) {
		c.serverURL = url
		c.hasServer = true
	}
}

// Build assembles the page of the operation at path and method. A missing
// operation is reported as an *oaserrors.OperationError.
func Build(doc *document.Document, path, method string, opts ...Option) (*Page, error) {
	op, err := doc.Operation(path, method)
	if err != nil {
		return nil, fmt.Errorf("docpage: %w", err)
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.hasServer {
		opts = append(opts, WithServerURL(doc.ServerURL()))
	}
	return New(op, opts...)
}

// New assembles the page of op.
func New(op *document.Operation, opts ...Option) (*Page, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Page{
		Method:      cases.Upper(language.English).String(op.Method),
		Path:        op.Path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
		Tags:        op.Tags,
		ServerURL:   cfg.serverURL,
		Parameters:  parameterGroups(op),
	}

	if rb := op.RequestBody; rb != nil {
		body, err := newBody(cfg.generator, document.PreferredContent(rb.Content), "body")
		if err != nil {
			return nil, err
		}
		body.Description = rb.Description
		body.Required = rb.Required
		p.RequestBody = body
	}

	for _, r := range op.Responses {
		resp := Response{Code: r.Code, Description: r.Description}
		if c := document.PreferredContent(r.Content); c != nil {
			body, err := newBody(cfg.generator, c, "response-"+r.Code)
			if err != nil {
				return nil, err
			}
			resp.Body = body
		}
		p.Responses = append(p.Responses, resp)
	}

	curl, err := playground.FromOperation(op, cfg.serverURL, playground.WithGenerator(cfg.generator)).Curl()
	if err != nil {
		return nil, fmt.Errorf("docpage: %w", err)
	}
	p.Curl = curl
	return p, nil
}

func parameterGroups(op *document.Operation) []ParameterGroup {
	title := cases.Title(language.English)
	var groups []ParameterGroup
	for _, in := range parameterOrder {
		params := op.ParametersIn(in)
		if len(params) == 0 {
			continue
		}
		g := ParameterGroup{In: in, Title: title.String(in) + " parameters"}
		for _, param := range params {
			s := param.DisplaySchema()
			if s == nil {
				s = &schema.Schema{Description: param.Description, Deprecated: param.Deprecated}
			}
			g.Fields = append(g.Fields, proptree.Render(s, proptree.Named(param.Name, param.Required, "param-"+param.Name))...)
		}
		groups = append(groups, g)
	}
	return groups
}

func newBody(gen example.Generator, c *document.Content, id string) (*Body, error) {
	body := &Body{}
	if c == nil || c.Media == nil {
		return body, nil
	}
	body.MediaType = c.MediaType
	body.Fields = proptree.Render(c.Media.Schema, proptree.Root(id))

	examples := gen.BuildExamples(c.Media)
	for _, name := range examples.Names() {
		v, _ := examples.Get(name)
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("docpage: example %q: %w", name, err)
		}
		body.Examples = append(body.Examples, Example{
			Name:    name,
			Label:   example.Label(name),
			Summary: summaryOf(c.Media, name),
			JSON:    string(data),
		})
	}
	return body, nil
}

func summaryOf(mt *schema.MediaType, name string) string {
	for _, ex := range mt.Examples {
		if ex.Name == name {
			return ex.Summary
		}
	}
	return ""
}

package mcpserver

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/playground"
)

type curlInput struct {
	Spec      specInput           `json:"spec"                 jsonschema:"The OAS document"`
	Method    string              `json:"method"               jsonschema:"HTTP method of the operation (get\\, post\\, ...)"`
	Path      string              `json:"path"                 jsonschema:"Path template of the operation, e.g. /pets/{petId}"`
	ServerURL string              `json:"server_url,omitempty" jsonschema:"Base URL (default: first server of the document)"`
	Example   string              `json:"example,omitempty"    jsonschema:"Name of the request example to send (default: first)"`
	Params    map[string][]string `json:"params,omitempty"     jsonschema:"Parameter values by name or by in:name (e.g. query:id) to target one location; several values repeat a query key or join a path segment with commas"`
}

type curlOutput struct {
	Method      string `json:"method"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body,omitempty"`
	Curl        string `json:"curl"`
}

func handleCurl(ctx context.Context, _ *mcp.CallToolRequest, input curlInput) (*mcp.CallToolResult, curlOutput, error) {
	doc, op, err := operationRef{Spec: input.Spec, Method: input.Method, Path: input.Path}.resolve(ctx)
	if err != nil {
		return errResult(err), curlOutput{}, nil
	}

	server := input.ServerURL
	if server == "" {
		server = doc.ServerURL()
	}
	var opts []playground.Option
	if input.Example != "" {
		opts = append(opts, playground.WithExample(input.Example))
	}
	names := make([]string, 0, len(input.Params))
	for name := range input.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		opts = append(opts, playground.WithParam(name, input.Params[name]...))
	}

	req := playground.FromOperation(op, server, opts...)
	target, err := req.URL()
	if err != nil {
		return errResult(err), curlOutput{}, nil
	}
	curl, err := req.Curl()
	if err != nil {
		return errResult(err), curlOutput{}, nil
	}

	body, err := req.EncodedBody()
	if err != nil {
		return errResult(err), curlOutput{}, nil
	}
	return nil, curlOutput{Method: req.Method, URL: target.String(), ContentType: req.ContentType, Body: body, Curl: curl}, nil
}

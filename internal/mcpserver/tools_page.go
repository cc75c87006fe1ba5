package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/docpage"
)

type pageInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The OAS document"`
	Method    string    `json:"method"               jsonschema:"HTTP method of the operation (get\\, post\\, ...)"`
	Path      string    `json:"path"                 jsonschema:"Path template of the operation, e.g. /pets/{petId}"`
	ServerURL string    `json:"server_url,omitempty" jsonschema:"Base URL of the curl sample (default: first server of the document)"`
}

type pageOutput struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

func handlePage(ctx context.Context, _ *mcp.CallToolRequest, input pageInput) (*mcp.CallToolResult, pageOutput, error) {
	doc, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), pageOutput{}, nil
	}
	var opts []docpage.Option
	if input.ServerURL != "" {
		opts = append(opts, docpage.WithServerURL(input.ServerURL))
	}
	page, err := docpage.Build(doc, input.Path, input.Method, opts...)
	if err != nil {
		return errResult(err), pageOutput{}, nil
	}
	md, err := page.Markdown()
	if err != nil {
		return errResult(err), pageOutput{}, nil
	}
	return nil, pageOutput{Title: page.Method + " " + page.Path, Markdown: md}, nil
}

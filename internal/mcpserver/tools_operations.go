package mcpserver

import (
	"context"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/document"
)

type operationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to list"`
	Tag    string    `json:"tag,omitempty"    jsonschema:"Only list operations with this tag"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	HasBody     bool     `json:"has_body,omitempty"`
}

type operationsOutput struct {
	Title      string             `json:"title,omitempty"`
	Version    string             `json:"version,omitempty"`
	OpenAPI    string             `json:"openapi"`
	ServerURL  string             `json:"server_url,omitempty"`
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
}

func handleOperations(ctx context.Context, _ *mcp.CallToolRequest, input operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
	doc, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	all := doc.Operations()
	var matched []*document.Operation
	for _, op := range all {
		if input.Tag == "" || slices.Contains(op.Tags, input.Tag) {
			matched = append(matched, op)
		}
	}
	page := paginate(matched, input.Offset, input.Limit)

	output := operationsOutput{
		Title:     doc.Title,
		Version:   doc.Version,
		OpenAPI:   doc.OpenAPI,
		ServerURL: doc.ServerURL(),
		Total:     len(all),
		Matched:   len(matched),
		Returned:  len(page),
	}
	for _, op := range page {
		output.Operations = append(output.Operations, operationSummary{
			Method:      strings.ToUpper(op.Method),
			Path:        op.Path,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Tags:        op.Tags,
			Deprecated:  op.Deprecated,
			HasBody:     op.RequestBody != nil,
		})
	}
	return nil, output, nil
}

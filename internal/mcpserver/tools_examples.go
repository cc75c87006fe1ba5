package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/example"
	"github.com/erraggy/oasdocs/schema"
)

type examplesInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The OAS document"`
	Method   string    `json:"method"             jsonschema:"HTTP method of the operation (get\\, post\\, ...)"`
	Path     string    `json:"path"               jsonschema:"Path template of the operation, e.g. /pets/{petId}"`
	Response string    `json:"response,omitempty" jsonschema:"Status code of a response (e.g. 200 or default); omit for the request body"`
}

type exampleEntry struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Summary string `json:"summary,omitempty"`
	JSON    string `json:"json"`
}

type examplesOutput struct {
	Examples []exampleEntry `json:"examples"`
	// Generated is true when the only example was generated from the schema.
	Generated bool `json:"generated,omitempty"`
}

func handleExamples(ctx context.Context, _ *mcp.CallToolRequest, input examplesInput) (*mcp.CallToolResult, examplesOutput, error) {
	_, op, err := operationRef{Spec: input.Spec, Method: input.Method, Path: input.Path}.resolve(ctx)
	if err != nil {
		return errResult(err), examplesOutput{}, nil
	}

	var mt *schema.MediaType
	if input.Response == "" {
		if op.RequestBody == nil {
			return errResult(fmt.Errorf("%s %s has no request body", input.Method, input.Path)), examplesOutput{}, nil
		}
		mt = op.RequestContent()
	} else {
		resp := op.Response(input.Response)
		if resp == nil {
			return errResult(fmt.Errorf("%s %s has no response %q", input.Method, input.Path, input.Response)), examplesOutput{}, nil
		}
		mt = resp.JSONContent()
	}

	examples := example.BuildExamples(mt)
	if examples == nil {
		return errResult(fmt.Errorf("%s %s: no content to build examples from", input.Method, input.Path)), examplesOutput{}, nil
	}

	var output examplesOutput
	for _, name := range examples.Names() {
		v, _ := examples.Get(name)
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errResult(err), examplesOutput{}, nil
		}
		entry := exampleEntry{Name: name, Label: example.Label(name), JSON: string(data)}
		for _, named := range mt.Examples {
			if named.Name == name {
				entry.Summary = named.Summary
			}
		}
		output.Examples = append(output.Examples, entry)
	}
	_, output.Generated = examples.Synthetic()
	return nil, output, nil
}

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs/docpage"
	"github.com/erraggy/oasdocs/proptree"
)

type propertyTreeInput struct {
	Spec             specInput `json:"spec"                        jsonschema:"The OAS document"`
	Method           string    `json:"method"                      jsonschema:"HTTP method of the operation (get\\, post\\, ...)"`
	Path             string    `json:"path"                        jsonschema:"Path template of the operation, e.g. /pets/{petId}"`
	IncludeResponses bool      `json:"include_responses,omitempty" jsonschema:"Also list the fields of every response"`
}

// treeRow is one flattened node. Rows are listed depth-first; a row's
// children follow it with Depth+1.
type treeRow struct {
	Section      string   `json:"section"`
	ID           string   `json:"id,omitempty"`
	Depth        int      `json:"depth"`
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"`
	Required     bool     `json:"required,omitempty"`
	Deprecated   bool     `json:"deprecated,omitempty"`
	Description  string   `json:"description,omitempty"`
	Default      string   `json:"default,omitempty"`
	Values       []string `json:"values,omitempty"`
	Range        string   `json:"range,omitempty"`
	Example      string   `json:"example,omitempty"`
	ItemsExample string   `json:"items_example,omitempty"`
}

// Row kinds.
const (
	kindField        = "field"
	kindProperty     = "property"
	kindItemProperty = "item_property"
	kindVariant      = "variant"
)

type propertyTreeOutput struct {
	Rows []treeRow `json:"rows"`
}

func handlePropertyTree(ctx context.Context, _ *mcp.CallToolRequest, input propertyTreeInput) (*mcp.CallToolResult, propertyTreeOutput, error) {
	_, op, err := operationRef{Spec: input.Spec, Method: input.Method, Path: input.Path}.resolve(ctx)
	if err != nil {
		return errResult(err), propertyTreeOutput{}, nil
	}
	page, err := docpage.New(op)
	if err != nil {
		return errResult(err), propertyTreeOutput{}, nil
	}

	var output propertyTreeOutput
	for _, g := range page.Parameters {
		output.Rows = flatten(output.Rows, g.Title, kindField, g.Fields, 0)
	}
	if page.RequestBody != nil {
		output.Rows = flatten(output.Rows, "Request body", kindField, page.RequestBody.Fields, 0)
	}
	if input.IncludeResponses {
		for _, r := range page.Responses {
			if r.Body != nil {
				output.Rows = flatten(output.Rows, "Response "+r.Code, kindField, r.Body.Fields, 0)
			}
		}
	}
	return nil, output, nil
}

func flatten(rows []treeRow, section, kind string, nodes []*proptree.Node, depth int) []treeRow {
	for _, n := range nodes {
		rows = append(rows, treeRow{
			Section:      section,
			ID:           n.ID,
			Depth:        depth,
			Kind:         kind,
			Name:         n.Name,
			Type:         n.Type,
			Required:     n.Required,
			Deprecated:   n.Deprecated,
			Description:  n.Description,
			Default:      n.Default,
			Values:       n.Values,
			Range:        n.Range,
			Example:      n.Example,
			ItemsExample: n.ItemsExample,
		})
		rows = flatten(rows, section, kindProperty, n.Properties, depth+1)
		rows = flatten(rows, section, kindItemProperty, n.ItemProperties, depth+1)
		rows = flatten(rows, section, kindVariant, n.Variants, depth+1)
	}
	return rows
}

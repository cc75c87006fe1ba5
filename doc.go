// Package oasdocs renders OpenAPI 3 operations into API reference material:
// synthetic request and response examples, collapsible property trees,
// Markdown documentation pages and runnable curl commands.
//
// Import path: github.com/erraggy/oasdocs
//
// # Packages
//
//   - schema: the schema node model, ordered JSON objects and media types
//   - example: example generation from schemas and per-body example sets
//   - proptree: nested property listings for parameters and bodies
//   - document: loading and dereferencing OpenAPI 3.x documents
//   - docpage: one-operation documentation pages rendered as Markdown
//   - playground: request URLs and curl commands for "try it out" panels
//   - oaserrors: structured errors matchable with errors.Is and errors.As
//
// # Quick Start
//
//	doc, err := document.Load(document.WithFilePath("openapi.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	op, err := doc.Operation("/pets", "post")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if body := op.RequestContent(); body != nil {
//	    examples := example.BuildExamples(body)
//	    nodes := proptree.Render(body.Schema, proptree.Root("body"))
//	    // ...
//	}
//
// The oasdocs command exposes the same operations on the command line and
// as an MCP server:
//
//	oasdocs examples openapi.yaml POST /pets
//	oasdocs page -o pets.md openapi.yaml POST /pets
//	oasdocs mcp
package oasdocs

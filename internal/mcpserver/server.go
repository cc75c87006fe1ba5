// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasdocs capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdocs"
)

const serverInstructions = `oasdocs MCP server: API reference pages, property trees, request examples and curl commands for OpenAPI 3 operations.

Every tool takes a spec (exactly one of file, url, or content). Operation tools also take a method and a path template such as /pets/{petId}; use the operations tool to discover them.

Configuration: defaults are configurable via OASDOCS_* environment variables set in your MCP client config.
- OASDOCS_MAX_INLINE_SIZE (default: 10MB) - maximum inline content size
- OASDOCS_MAX_FILE_SIZE (default: 10MB) - maximum document size
- OASDOCS_MAX_REF_DEPTH (default: 100) - maximum $ref nesting depth
- OASDOCS_FETCH_TIMEOUT (default: 30s) - timeout for url inputs
- OASDOCS_ALLOW_PRIVATE_IPS (default: false) - allow url inputs on private networks
- OASDOCS_OPERATIONS_LIMIT (default: 100) - default page size of the operations tool

Documents are loaded on every call; nothing is cached between calls.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdocs", Version: oasdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "operations",
		Description: "List the operations of an OpenAPI 3 document in document order: method, path, operationId, summary, tags. Filter by tag. Use offset/limit to paginate; the default limit is configurable via OASDOCS_OPERATIONS_LIMIT.",
	}, handleOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "examples",
		Description: "Return the request body examples of an operation as indented JSON. Named examples from the document are returned in order; when there are none, a single example generated from the schema is returned under the name \"schema\". Set response to a status code (e.g. 200 or default) to get the examples of that response instead.",
	}, handleExamples)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "property_tree",
		Description: "Return the documented fields of an operation's parameters and request body as a flattened tree. Each row carries its depth, name, display type, required marker, constraints (default, values, range) and example. Hidden fields are omitted. Set include_responses to add the fields of every response.",
	}, handlePropertyTree)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "page",
		Description: "Render the reference page of one operation as Markdown: parameters, request body fields and examples, responses, and a curl sample.",
	}, handlePage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "curl",
		Description: "Build the request of an operation as a curl command. Parameters default to their example or schema default and can be overridden with params. The body is the first request example unless example names another one.",
	}, handleCurl)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.OperationsLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.OperationsLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

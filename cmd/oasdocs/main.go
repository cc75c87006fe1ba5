package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/cmd/oasdocs/commands"
	"github.com/erraggy/oasdocs/internal/mcpserver"
)

// commandNames lists every top-level command, used for typo suggestions.
var commandNames = []string{
	"operations", "examples", "tree", "page", "curl", "mcp", "version", "help",
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		commands.Writef(os.Stdout, "oasdocs %s\n", oasdocs.Version())
		if len(args) > 0 && (args[0] == "--verbose" || args[0] == "-verbose") {
			commands.Writef(os.Stdout, "%s\n", oasdocs.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "operations":
		err = commands.HandleOperations(args)
	case "examples":
		err = commands.HandleExamples(args)
	case "tree":
		err = commands.HandleTree(args)
	case "page":
		err = commands.HandlePage(args)
	case "curl":
		err = commands.HandleCurl(args)
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = mcpserver.Run(ctx)
		stop()
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		commands.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command name within an edit distance
// of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	commands.Writef(os.Stderr, `oasdocs - API reference pages and examples from OpenAPI documents

Usage:
  oasdocs <command> [flags] [arguments]

Commands:
  operations  List the operations of a document
  examples    Print the request (or response) examples of an operation
  tree        Print the property tree of an operation
  page        Render the reference page of an operation as Markdown
  curl        Print a curl command for an operation
  mcp         Start the MCP server over stdio
  version     Print version information
  help        Show this help

Run 'oasdocs <command> --help' for the flags of a command.

Examples:
  oasdocs operations openapi.yaml
  oasdocs examples openapi.yaml POST /pets
  oasdocs page -o pets.md openapi.yaml GET /pets
  cat openapi.yaml | oasdocs tree - POST /pets
`)
}

package commands

import (
	"flag"
	"io"
	"strings"

	"github.com/erraggy/oasdocs/docpage"
	"github.com/erraggy/oasdocs/proptree"
)

// TreeFlags contains flags for the tree command
type TreeFlags struct {
	CommonFlags
	Format string
}

// TreeOutput is the structured output of the tree command.
type TreeOutput struct {
	Parameters  []docpage.ParameterGroup `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody []*proptree.Node         `json:"request_body,omitempty" yaml:"request_body,omitempty"`
}

// SetupTreeFlags creates and configures a FlagSet for the tree command.
func SetupTreeFlags() (*flag.FlagSet, *TreeFlags) {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	flags := &TreeFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs tree [flags] %s\n\n", operationArgs)
		Writef(output, "Print the property tree of an operation's parameters and request body.\n")
		Writef(output, "Required fields are marked with '*'.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs tree openapi.yaml POST /pets\n")
		Writef(output, "  oasdocs tree --format json openapi.yaml get /pets\n")
	}

	return fs, flags
}

// HandleTree executes the tree command
func HandleTree(args []string) error {
	fs, flags := SetupTreeFlags()
	if done, err := parseArgs(fs, args, 3, "a document, a method and a path"); done {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	_, op, err := loadOperation(fs, flags.CommonFlags)
	if err != nil {
		return err
	}
	page, err := docpage.New(op)
	if err != nil {
		return err
	}

	out := TreeOutput{Parameters: page.Parameters}
	if page.RequestBody != nil {
		out.RequestBody = page.RequestBody.Fields
	}

	if flags.Format != FormatText {
		return OutputStructured(Stdout, out, flags.Format)
	}
	for _, g := range out.Parameters {
		Writef(Stdout, "%s:\n", g.Title)
		writeTree(Stdout, g.Fields, 1)
	}
	if page.RequestBody != nil {
		Writef(Stdout, "Request body:\n")
		writeTree(Stdout, out.RequestBody, 1)
	}
	return nil
}

// writeTree prints nodes one per line, children indented below.
func writeTree(w io.Writer, nodes []*proptree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		line := n.Name
		if n.Required {
			line += "*"
		}
		if n.Type != "" {
			line += " " + n.Type
		}
		var notes []string
		if n.Deprecated {
			notes = append(notes, "deprecated")
		}
		if n.Default != "" {
			notes = append(notes, "default "+n.Default)
		}
		if len(n.Values) > 0 {
			notes = append(notes, "values "+strings.Join(n.Values, ", "))
		}
		if n.Range != "" {
			notes = append(notes, "range "+n.Range)
		}
		if n.Example != "" {
			notes = append(notes, "example "+n.Example)
		}
		if len(notes) > 0 {
			line += " (" + strings.Join(notes, "; ") + ")"
		}
		if n.Description != "" {
			line += " - " + strings.Join(strings.Fields(n.Description), " ")
		}
		Writef(w, "%s%s\n", indent, line)
		writeTree(w, n.Properties, depth+1)
		writeTree(w, n.ItemProperties, depth+1)
		if len(n.Variants) > 0 {
			Writef(w, "%s  one of:\n", indent)
			writeTree(w, n.Variants, depth+2)
		}
	}
}

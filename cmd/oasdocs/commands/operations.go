package commands

import (
	"flag"
	"strings"
	"text/tabwriter"
)

// OperationsFlags contains flags for the operations command
type OperationsFlags struct {
	CommonFlags
	Format string
}

// OperationSummary is one row of the operations listing.
type OperationSummary struct {
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	OperationID string   `json:"operation_id,omitempty" yaml:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// SetupOperationsFlags creates and configures a FlagSet for the operations command.
func SetupOperationsFlags() (*flag.FlagSet, *OperationsFlags) {
	fs := flag.NewFlagSet("operations", flag.ContinueOnError)
	flags := &OperationsFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs operations [flags] <file|url|->\n\n")
		Writef(output, "List the operations of an OpenAPI document in document order.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs operations openapi.yaml\n")
		Writef(output, "  oasdocs operations --format json https://example.com/openapi.json\n")
	}

	return fs, flags
}

// HandleOperations executes the operations command
func HandleOperations(args []string) error {
	fs, flags := SetupOperationsFlags()
	if done, err := parseArgs(fs, args, 1, "exactly one file path, URL, or '-' for stdin"); done {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	doc, err := LoadSpec(fs.Arg(0), flags.CommonFlags)
	if err != nil {
		return err
	}

	var rows []OperationSummary
	for _, op := range doc.Operations() {
		rows = append(rows, OperationSummary{
			Method:      strings.ToUpper(op.Method),
			Path:        op.Path,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Tags:        op.Tags,
			Deprecated:  op.Deprecated,
		})
	}

	if flags.Format != FormatText {
		return OutputStructured(Stdout, rows, flags.Format)
	}

	tw := tabwriter.NewWriter(Stdout, 0, 4, 2, ' ', 0)
	Writef(tw, "METHOD\tPATH\tOPERATION ID\tSUMMARY\n")
	for _, r := range rows {
		summary := r.Summary
		if r.Deprecated {
			summary = strings.TrimSpace(summary + " (deprecated)")
		}
		Writef(tw, "%s\t%s\t%s\t%s\n", r.Method, r.Path, r.OperationID, summary)
	}
	return tw.Flush()
}

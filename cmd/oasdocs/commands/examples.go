package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/example"
)

const operationArgs = "<file|url|-> <METHOD> <path>"

// ExamplesFlags contains flags for the examples command
type ExamplesFlags struct {
	CommonFlags
	Response string
	Format   string
}

// SetupExamplesFlags creates and configures a FlagSet for the examples command.
func SetupExamplesFlags() (*flag.FlagSet, *ExamplesFlags) {
	fs := flag.NewFlagSet("examples", flag.ContinueOnError)
	flags := &ExamplesFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Response, "response", "", "show the examples of this response code instead of the request body")
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs examples [flags] %s\n\n", operationArgs)
		Writef(output, "Print the named examples of a request body, or a generated example\n")
		Writef(output, "under \"schema\" when the body declares none.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs examples openapi.yaml POST /pets\n")
		Writef(output, "  oasdocs examples --response 200 --format yaml openapi.yaml GET /pets/{petId}\n")
	}

	return fs, flags
}

// HandleExamples executes the examples command
func HandleExamples(args []string) error {
	fs, flags := SetupExamplesFlags()
	if done, err := parseArgs(fs, args, 3, "a document, a method and a path"); done {
		return err
	}
	if err := ValidateOutputFormat(flags.Format, FormatJSON, FormatYAML); err != nil {
		return err
	}

	_, op, err := loadOperation(fs, flags.CommonFlags)
	if err != nil {
		return err
	}

	examples, err := operationExamples(op, flags.Response)
	if err != nil {
		return err
	}
	return OutputStructured(Stdout, examples, flags.Format)
}

// operationExamples returns the request body examples, or those of the
// response with the given code.
func operationExamples(op *document.Operation, code string) (*example.Examples, error) {
	label := strings.ToUpper(op.Method) + " " + op.Path
	if code == "" {
		if op.RequestBody == nil {
			return nil, fmt.Errorf("%s has no request body", label)
		}
		if ex := example.BuildExamples(op.RequestContent()); ex != nil {
			return ex, nil
		}
		return nil, fmt.Errorf("%s request body has no content", label)
	}

	resp := op.Response(code)
	if resp == nil {
		codes := make([]string, 0, len(op.Responses))
		for _, r := range op.Responses {
			codes = append(codes, r.Code)
		}
		return nil, fmt.Errorf("%s has no response %q (defined: %v)", label, code, codes)
	}
	if ex := example.BuildExamples(resp.JSONContent()); ex != nil {
		return ex, nil
	}
	return nil, fmt.Errorf("%s response %s has no content", label, code)
}

// loadOperation loads the document named by the first positional argument
// and looks up the operation named by the next two.
func loadOperation(fs *flag.FlagSet, common CommonFlags) (*document.Document, *document.Operation, error) {
	doc, err := LoadSpec(fs.Arg(0), common)
	if err != nil {
		return nil, nil, err
	}
	op, err := doc.Operation(fs.Arg(2), fs.Arg(1))
	if err != nil {
		return nil, nil, err
	}
	return doc, op, nil
}

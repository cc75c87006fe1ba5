package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasdocs/docpage"
	"github.com/erraggy/oasdocs/internal/fileutil"
)

// PageFlags contains flags for the page command
type PageFlags struct {
	CommonFlags
	Output string
	Format string
	Server string
}

// SetupPageFlags creates and configures a FlagSet for the page command.
func SetupPageFlags() (*flag.FlagSet, *PageFlags) {
	fs := flag.NewFlagSet("page", flag.ContinueOnError)
	flags := &PageFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", FormatMarkdown, "output format: markdown, json, or yaml")
	fs.StringVar(&flags.Server, "server", "", "base URL of the curl sample (default: first server of the document)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs page [flags] %s\n\n", operationArgs)
		Writef(output, "Render the reference page of one operation: parameters, request body,\n")
		Writef(output, "examples, responses and a curl sample.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs page openapi.yaml POST /pets\n")
		Writef(output, "  oasdocs page -o create-pet.md openapi.yaml POST /pets\n")
		Writef(output, "  oasdocs page --format json openapi.yaml GET /pets/{petId}\n")
	}

	return fs, flags
}

// HandlePage executes the page command
func HandlePage(args []string) error {
	fs, flags := SetupPageFlags()
	if done, err := parseArgs(fs, args, 3, "a document, a method and a path"); done {
		return err
	}
	if err := ValidateOutputFormat(flags.Format, FormatMarkdown, FormatJSON, FormatYAML); err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, fs.Arg(0)); err != nil {
			return err
		}
	}

	doc, err := LoadSpec(fs.Arg(0), flags.CommonFlags)
	if err != nil {
		return err
	}
	var opts []docpage.Option
	if flags.Server != "" {
		opts = append(opts, docpage.WithServerURL(flags.Server))
	}
	page, err := docpage.Build(doc, fs.Arg(2), fs.Arg(1), opts...)
	if err != nil {
		return err
	}

	if flags.Output == "" {
		if flags.Format != FormatMarkdown {
			return OutputStructured(Stdout, page, flags.Format)
		}
		md, err := page.Markdown()
		if err != nil {
			return err
		}
		Writef(Stdout, "%s", md)
		return nil
	}

	f, err := fileutil.CreateOutput(flags.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if flags.Format != FormatMarkdown {
		if err := OutputStructured(f, page, flags.Format); err != nil {
			return err
		}
	} else {
		md, err := page.Markdown()
		if err != nil {
			return err
		}
		if _, err := f.WriteString(md); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	}
	Writef(os.Stderr, "Wrote %s\n", flags.Output)
	return f.Close()
}

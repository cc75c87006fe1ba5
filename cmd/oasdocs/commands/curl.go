package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/oasdocs/playground"
)

// paramList collects repeated --param name=value flags.
type paramList []string

func (p *paramList) String() string { return strings.Join(*p, ",") }

func (p *paramList) Set(value string) error {
	if name, _, ok := strings.Cut(value, "="); !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", value)
	}
	*p = append(*p, value)
	return nil
}

// options groups the values by parameter name, keeping first-seen order.
func (p paramList) options() []playground.Option {
	var names []string
	values := make(map[string][]string)
	for _, raw := range p {
		name, value, _ := strings.Cut(raw, "=")
		if _, ok := values[name]; !ok {
			names = append(names, name)
		}
		values[name] = append(values[name], value)
	}
	opts := make([]playground.Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, playground.WithParam(name, values[name]...))
	}
	return opts
}

// CurlFlags contains flags for the curl command
type CurlFlags struct {
	CommonFlags
	Server  string
	Example string
	Params  paramList
}

// SetupCurlFlags creates and configures a FlagSet for the curl command.
func SetupCurlFlags() (*flag.FlagSet, *CurlFlags) {
	fs := flag.NewFlagSet("curl", flag.ContinueOnError)
	flags := &CurlFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Server, "server", "", "base URL (default: first server of the document)")
	fs.StringVar(&flags.Example, "example", "", "name of the request example to send (default: first)")
	fs.Var(&flags.Params, "param", "parameter value as name=value or in:name=value, e.g. query:id=7 (repeatable)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs curl [flags] %s\n\n", operationArgs)
		Writef(output, "Print a curl command for an operation. Parameters default to their\n")
		Writef(output, "example or schema default; the body is the first request example.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs curl openapi.yaml POST /pets\n")
		Writef(output, "  oasdocs curl --server http://localhost:8080 --param petId=7 openapi.yaml GET /pets/{petId}\n")
		Writef(output, "  oasdocs curl --param status=available --param status=sold openapi.yaml GET /pets\n")
	}

	return fs, flags
}

// HandleCurl executes the curl command
func HandleCurl(args []string) error {
	fs, flags := SetupCurlFlags()
	if done, err := parseArgs(fs, args, 3, "a document, a method and a path"); done {
		return err
	}

	doc, op, err := loadOperation(fs, flags.CommonFlags)
	if err != nil {
		return err
	}

	server := flags.Server
	if server == "" {
		server = doc.ServerURL()
	}
	opts := flags.Params.options()
	if flags.Example != "" {
		opts = append(opts, playground.WithExample(flags.Example))
	}

	curl, err := playground.FromOperation(op, server, opts...).Curl()
	if err != nil {
		return err
	}
	Writef(Stdout, "%s\n", curl)
	return nil
}

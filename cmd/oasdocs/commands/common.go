// Package commands provides CLI command handlers for oasdocs.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/document"
)

// Output format constants
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Stdout receives command output. Tests replace it to capture output.
var Stdout io.Writer = os.Stdout

// ValidateOutputFormat returns an error unless format is one of allowed.
func ValidateOutputFormat(format string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = []string{FormatText, FormatJSON, FormatYAML}
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(allowed, ", "))
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// ValidateOutputPath checks that the output path does not overwrite the input.
func ValidateOutputPath(outputPath, inputPath string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if inputPath != StdinFilePath && !strings.Contains(inputPath, "://") {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// CommonFlags are accepted by every command that reads a document.
type CommonFlags struct {
	Verbose     bool
	MaxRefDepth int
	StrictRefs  bool
}

func (c *CommonFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.Verbose, "verbose", false, "log loader activity to stderr")
	fs.IntVar(&c.MaxRefDepth, "max-ref-depth", document.DefaultMaxRefDepth, "maximum $ref nesting depth")
	fs.BoolVar(&c.StrictRefs, "strict-refs", false, "fail on circular schema references instead of cutting them")
}

// NewLogger returns the loader logger for the verbose flag. The returned
// function flushes buffered entries.
func NewLogger(verbose bool) (document.Logger, func()) {
	if !verbose {
		return document.NopLogger{}, func() {}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		Writef(os.Stderr, "Warning: verbose logging unavailable: %v\n", err)
		return document.NopLogger{}, func() {}
	}
	return document.NewZapAdapter(logger), func() { _ = logger.Sync() }
}

// LoadSpec loads the document at specPath, which may be a file, a URL or
// StdinFilePath.
func LoadSpec(specPath string, common CommonFlags) (*document.Document, error) {
	logger, flush := NewLogger(common.Verbose)
	defer flush()

	opts := []document.Option{
		document.WithLogger(logger),
		document.WithMaxRefDepth(common.MaxRefDepth),
		document.WithStrictRefs(common.StrictRefs),
	}
	if specPath == StdinFilePath {
		opts = append(opts, document.WithReader(os.Stdin), document.WithSourceName(FormatSpecPath(specPath)))
	} else {
		opts = append(opts, document.WithFilePath(specPath))
	}

	doc, err := document.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}
	return doc, nil
}

// parseArgs parses fs and checks the positional argument count. A help
// request returns done=true with no error.
func parseArgs(fs *flag.FlagSet, args []string, want int, usage string) (done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return true, err
	}
	if fs.NArg() != want {
		fs.Usage()
		return true, fmt.Errorf("%s command requires %s", fs.Name(), usage)
	}
	return false, nil
}

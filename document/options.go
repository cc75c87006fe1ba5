package document

import (
	"io"
	"net/http"

	"github.com/erraggy/oasdocs/internal/options"
	"github.com/erraggy/oasdocs/oaserrors"
)

// Resource limit defaults.
const (
	// DefaultMaxRefDepth bounds the length of a $ref chain and the nesting of
	// schemas reached through references.
	DefaultMaxRefDepth = 100
	// DefaultMaxFileSize bounds the size of the document, in bytes.
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	url      *string
	reader   io.Reader
	bytes    []byte

	userAgent  string
	httpClient *http.Client
	logger     Logger

	// Resource limits (0 means use default)
	maxRefDepth int
	maxFileSize int64

	sourceName *string
	strictRefs bool
}

var sourceOptionNames = []string{"WithFilePath", "WithURL", "WithReader", "WithBytes"}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(sourceOptionNames,
		cfg.filePath != nil, cfg.url != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	if cfg.maxRefDepth == 0 {
		cfg.maxRefDepth = DefaultMaxRefDepth
	}
	if cfg.maxFileSize == 0 {
		cfg.maxFileSize = DefaultMaxFileSize
	}
	if cfg.logger == nil {
		cfg.logger = NopLogger{}
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source.
// Paths starting with http:// or https:// are fetched.
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		if isURL(path) {
			cfg.url = &path
			return nil
		}
		cfg.filePath = &path
		return nil
	}
}

// WithURL specifies an http or https URL as the input source.
func WithURL(u string) Option {
	return func(cfg *loadConfig) error {
		if !isURL(u) {
			return &oaserrors.ConfigError{Option: "WithURL", Value: u, Message: "must be an http or https URL"}
		}
		cfg.url = &u
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithHTTPClient sets the HTTP client used to fetch URL sources.
// If the client is nil, this option has no effect (a client with a 30s
// timeout is used).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *loadConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasdocs/<version>"
func WithUserAgent(ua string) Option {
	return func(cfg *loadConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the structured logger for load operations.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth sets the maximum depth for resolving nested $ref pointers.
// A value of 0 means use the default (100).
// Returns an error if depth is negative.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *loadConfig) error {
		if depth < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxRefDepth", Value: depth, Message: "cannot be negative"}
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxFileSize sets the maximum document size in bytes.
// A value of 0 means use the default (10MB).
// Returns an error if size is negative.
func WithMaxFileSize(size int64) Option {
	return func(cfg *loadConfig) error {
		if size < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxFileSize", Value: size, Message: "cannot be negative"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithStrictRefs makes circular schema references fatal. By default a cycle
// is cut where it closes: the repeated reference becomes a placeholder
// schema and a warning is logged. In strict mode Load instead fails with an
// *oaserrors.ReferenceError whose IsCircular is set.
func WithStrictRefs(strict bool) Option {
	return func(cfg *loadConfig) error {
		cfg.strictRefs = strict
		return nil
	}
}

// WithSourceName overrides the SourcePath recorded on the loaded Document.
// Useful for reader and byte sources, which are otherwise named
// "reader" and "bytes".
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

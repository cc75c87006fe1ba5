package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/internal/options"
)

// specInput represents the three ways an OAS document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OAS document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

var specSourceNames = []string{"file", "url", "content"}

// load reads and dereferences the document. File and inline documents are
// served from the document cache while unchanged.
func (s specInput) load(ctx context.Context) (*document.Document, error) {
	if err := options.ValidateSingleInputSource(specSourceNames, s.File != "", s.URL != "", s.Content != ""); err != nil {
		return nil, err
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASDOCS_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var (
		key  string
		info os.FileInfo
	)
	switch {
	case s.File != "":
		var err error
		if key, info, err = fileKey(s.File); err != nil {
			key = ""
		}
	case s.Content != "":
		key = contentKey(s.Content)
	}
	if key != "" {
		if doc, ok := docs.get(key, info); ok {
			return doc, nil
		}
	}

	opts := []document.Option{
		document.WithMaxRefDepth(cfg.MaxRefDepth),
		document.WithMaxFileSize(cfg.MaxFileSize),
	}
	switch {
	case s.File != "":
		opts = append(opts, document.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, document.WithURL(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, document.WithHTTPClient(newSafeHTTPClient(cfg.FetchTimeout)))
		}
	default:
		opts = append(opts, document.WithBytes([]byte(s.Content)), document.WithSourceName("content"))
	}
	doc, err := document.LoadContext(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		docs.put(key, info, doc)
	}
	return doc, nil
}

// operationRef names one operation of a document.
type operationRef struct {
	Spec   specInput
	Method string
	Path   string
}

// resolve loads the document and looks up the operation.
func (r operationRef) resolve(ctx context.Context) (*document.Document, *document.Operation, error) {
	if r.Method == "" || r.Path == "" {
		return nil, nil, fmt.Errorf("method and path are required")
	}
	doc, err := r.Spec.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	op, err := doc.Operation(r.Path, r.Method)
	if err != nil {
		return nil, nil, err
	}
	return doc, op, nil
}

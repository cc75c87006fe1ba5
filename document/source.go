package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/oaserrors"
)

// SourceFormat is the serialization of the loaded document.
type SourceFormat string

const (
	SourceFormatYAML SourceFormat = "yaml"
	SourceFormatJSON SourceFormat = "json"
)

const defaultHTTPTimeout = 30 * time.Second

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// readSource returns the raw document bytes and the name to record as its
// source path.
func readSource(ctx context.Context, cfg *loadConfig) ([]byte, string, error) {
	var (
		data []byte
		name string
		err  error
	)
	switch {
	case cfg.filePath != nil:
		name = *cfg.filePath
		data, err = readFile(name, cfg.maxFileSize)
	case cfg.url != nil:
		name = *cfg.url
		data, err = fetchURL(ctx, cfg, name)
	case cfg.reader != nil:
		name = "reader"
		data, err = readLimited(cfg.reader, cfg.maxFileSize, name)
	default:
		name = "bytes"
		data = cfg.bytes
		if int64(len(data)) > cfg.maxFileSize {
			err = sizeError(int64(len(data)), cfg.maxFileSize, name)
		}
	}
	if cfg.sourceName != nil {
		name = *cfg.sourceName
	}
	return data, name, err
}

func readFile(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	if info.Size() > limit {
		return nil, sizeError(info.Size(), limit, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, limit, path)
}

// readLimited reads at most limit bytes and fails when r holds more.
func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("document: failed to read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, sizeError(0, limit, name)
	}
	return data, nil
}

func sizeError(actual, limit int64, name string) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        limit,
		Actual:       actual,
		Message:      name,
	}
}

func fetchURL(ctx context.Context, cfg *loadConfig, urlStr string) ([]byte, error) {
	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("document: failed to create request: %w", err)
	}
	userAgent := cfg.userAgent
	if userAgent == "" {
		userAgent = oasdocs.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := client.Do(req) //nolint:gosec // G107 - URL is caller-provided input
	if err != nil {
		return nil, fmt.Errorf("document: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document: HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	if resp.ContentLength > cfg.maxFileSize {
		return nil, sizeError(resp.ContentLength, cfg.maxFileSize, urlStr)
	}
	return readLimited(resp.Body, cfg.maxFileSize, urlStr)
}

// detectFormat reports JSON when the first non-space byte opens an object.
func detectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

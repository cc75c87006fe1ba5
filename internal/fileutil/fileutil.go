// Package fileutil holds the file modes and helpers used when oasdocs writes
// rendered pages to disk.
package fileutil

import (
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for rendered pages, which may
// contain API details the document owner has not published (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// CreateOutput creates or truncates the file at path with OwnerReadWrite
// permissions. An existing file keeps its current mode.
func CreateOutput(path string) (*os.File, error) {
	return os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OwnerReadWrite)
}

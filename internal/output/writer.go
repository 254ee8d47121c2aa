// Package output writes assembled pages into the output tree.
package output

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

const (
	dirMode  = 0o750
	fileMode = 0o644
)

// Writer writes pages below a root directory, mirroring their relative paths.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the output root.
func (w *Writer) Root() string { return w.root }

// Write stores html at rel below the root, creating missing directories and
// replacing any existing file. The content goes to a temporary file first and
// is renamed into place, so readers never observe a truncated page.
func (w *Writer) Write(rel, html string) (string, error) {
	path := filepath.Join(w.root, rel)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", w.fail(err, "failed to create output directory", dir)
	}

	tmp, err := os.CreateTemp(dir, ".htmlgen-*")
	if err != nil {
		return "", w.fail(err, "failed to create temporary file", dir)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(html); err != nil {
		_ = tmp.Close()
		return "", w.fail(err, "failed to write page", path)
	}
	if err := tmp.Close(); err != nil {
		return "", w.fail(err, "failed to write page", path)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return "", w.fail(err, "failed to set page permissions", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", w.fail(err, "failed to move page into place", path)
	}
	return path, nil
}

func (w *Writer) fail(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		WithContext("path", path).
		Build()
}

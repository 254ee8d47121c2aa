package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/logfields"
)

const markdownExt = ".md"

// Discovery finds content fragments under a content root.
type Discovery struct {
	root       string
	extensions []string
}

// NewDiscovery creates a discovery for root accepting files with the given
// extensions (".html" when none are given).
func NewDiscovery(root string, extensions []string) *Discovery {
	if len(extensions) == 0 {
		extensions = []string{".html"}
	}
	return &Discovery{root: root, extensions: extensions}
}

// Discover walks the content root and returns every fragment, ordered by
// relative path. Files with other extensions and hidden files are skipped.
// The whole tree is validated before anything is returned, so a malformed
// path aborts the build before any output is written.
func (d *Discovery) Discover() ([]Unit, error) {
	info, err := os.Stat(d.root)
	if err != nil || !info.IsDir() {
		b := errors.ConfigError("content directory not found").WithContext("path", d.root)
		if err != nil {
			b = b.WithCause(err)
		}
		return nil, b.Build()
	}

	var units []Unit
	err = filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.WrapError(walkErr, errors.CategoryFileSystem, "failed to walk content directory").
				WithContext("path", path).
				Build()
		}
		if entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !d.accepts(name) {
			return nil
		}

		unit, err := d.unitFor(path)
		if err != nil {
			return err
		}
		units = append(units, unit)
		slog.Debug("Discovered content", logfields.File(unit.RelPath), logfields.Lang(unit.Lang.String()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(units, func(a, b Unit) int { return strings.Compare(a.RelPath, b.RelPath) })
	slog.Info("Content discovered", logfields.Path(d.root), logfields.Count(len(units)))
	return units, nil
}

func (d *Discovery) accepts(name string) bool {
	for _, ext := range d.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (d *Discovery) unitFor(path string) (Unit, error) {
	rel, err := filepath.Rel(d.root, path)
	if err != nil {
		return Unit{}, errors.WrapError(err, errors.CategoryInternal, "invalid relative path").
			WithContext("path", path).
			Build()
	}
	if !strings.Contains(filepath.ToSlash(rel), "/") {
		return Unit{}, errors.ValidationError("content path lacks a language directory").
			WithContext("path", path).
			Build()
	}

	l, filename, err := ParsePath(path)
	if err != nil {
		return Unit{}, err
	}

	unit := Unit{
		Path:     path,
		RelPath:  rel,
		Lang:     l,
		Filename: filename,
		Markdown: filepath.Ext(filename) == markdownExt,
	}
	if unit.Markdown {
		unit.Filename = strings.TrimSuffix(filename, markdownExt) + ".html"
	}
	return unit, nil
}

package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o600))
	}
}

func TestDiscoverFindsPagesInOrder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "html-content")
	writeTree(t, root, map[string]string{
		"fr/accueil.html": "<p>Bonjour</p>",
		"en/index.html":   "<p>Hello</p>",
		"en/about.html":   "<p>About</p>",
		"en/notes.txt":    "skipped",
		"en/.draft.html":  "hidden",
		"fr/style.css":    "skipped",
	})

	units, err := NewDiscovery(root, nil).Discover()
	require.NoError(t, err)
	require.Len(t, units, 3)

	assert.Equal(t, filepath.Join("en", "about.html"), units[0].RelPath)
	assert.Equal(t, filepath.Join("en", "index.html"), units[1].RelPath)
	assert.Equal(t, filepath.Join("fr", "accueil.html"), units[2].RelPath)

	assert.Equal(t, lang.French, units[2].Lang)
	assert.Equal(t, "accueil.html", units[2].Filename)
	assert.Equal(t, filepath.Join(root, "fr", "accueil.html"), units[2].Path)
	assert.False(t, units[2].Markdown)
}

func TestDiscoverMarkdown(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"en/notes.md":   "# Notes",
		"en/index.html": "<p>Hi</p>",
	})

	units, err := NewDiscovery(root, []string{".html", ".md"}).Discover()
	require.NoError(t, err)
	require.Len(t, units, 2)

	md := units[1]
	assert.True(t, md.Markdown)
	assert.Equal(t, "notes.html", md.Filename)
	assert.Equal(t, filepath.Join("en", "notes.html"), md.OutputRelPath())
}

func TestDiscoverRejectsFileWithoutLanguageDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"en/index.html": "<p>Hello</p>",
		"orphan.html":   "<p>?</p>",
	})

	units, err := NewDiscovery(root, nil).Discover()
	require.Error(t, err)
	assert.Nil(t, units)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestDiscoverRejectsUnsupportedLanguage(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"de/index.html": "<p>Hallo</p>"})

	_, err := NewDiscovery(root, nil).Discover()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := NewDiscovery(filepath.Join(t.TempDir(), "absent"), nil).Discover()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

package output

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

func TestWriteCreatesDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "_site")
	w := NewWriter(root)

	path, err := w.Write(filepath.Join("fr", "docs", "accueil.html"), "<p>Bonjour</p>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fr", "docs", "accueil.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>Bonjour</p>", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())
	}
}

func TestWriteOverwritesAndLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	_, err := w.Write("en/index.html", "a much longer first version of the page")
	require.NoError(t, err)
	_, err = w.Write("en/index.html", "short")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "en", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "en"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.html", entries[0].Name())
}

func TestWriteFailureIsClassified(t *testing.T) {
	root := t.TempDir()
	// A file where a directory is needed.
	require.NoError(t, os.WriteFile(filepath.Join(root, "en"), []byte("x"), 0o600))

	_, err := NewWriter(root).Write("en/index.html", "<p>x</p>")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

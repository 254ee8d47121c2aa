package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/htmlgen/internal/lang"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line no newline", "<p>x</p>", "  <p>x</p>"},
		{"trailing newline kept", "<p>x</p>\n", "  <p>x</p>\n"},
		{"blank lines untouched", "<a>\n\n   \n<b>\n", "  <a>\n\n   \n  <b>\n"},
		{"crlf preserved", "<a>\r\n<b>\r\n", "  <a>\r\n  <b>\r\n"},
		{"already indented", "  <a>\n", "    <a>\n"},
		{"bare carriage return", "<a>\r<b>", "  <a>\r  <b>"},
		{"mixed terminators", "<a>\r\n\r<b>\n", "  <a>\r\n\r  <b>\n"},
		{"unicode line separators", "<a>\u2028<b>\u2029<c>\u0085<d>", "  <a>\u2028  <b>\u2029  <c>\u0085  <d>"},
		{"form feed and vertical tab", "<a>\f<b>\v\x1c<c>", "  <a>\f  <b>\v\x1c  <c>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indent(tt.in, "  "))
		})
	}
	assert.Equal(t, "<a>\n", Indent("<a>\n", ""))
	assert.Equal(t, "      ", Pad(6))
}

func TestReaderExtras(t *testing.T) {
	dir := t.TempDir()
	head := filepath.Join(dir, "html-extra-head")
	scripts := filepath.Join(dir, "html-extra-scripts")
	writeTree(t, head, map[string]string{"en/index.html": "<link rel=\"stylesheet\" href=\"home.css\">\n"})
	require.NoError(t, os.MkdirAll(filepath.Join(scripts, "fr", "accueil.html"), 0o750)) // a directory is not a fragment

	r := NewReader(head, scripts)

	got, err := r.ExtraHead(lang.English, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<link rel=\"stylesheet\" href=\"home.css\">\n", got)

	got, err = r.ExtraHead(lang.French, "accueil.html")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.ExtraScripts(lang.French, "accueil.html")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = NewReader("", "").ExtraScripts(lang.English, "index.html")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReaderBody(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"en/index.html": "<p>Hello</p>\n",
		"en/notes.md":   "# Notes\n\nSome *text* with <span>html</span>.\n",
	})
	r := NewReader("", "")

	body, err := r.Body(Unit{Path: filepath.Join(root, "en", "index.html")})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>\n", body)

	body, err = r.Body(Unit{Path: filepath.Join(root, "en", "notes.md"), Markdown: true})
	require.NoError(t, err)
	assert.Contains(t, body, "<h1>Notes</h1>")
	assert.Contains(t, body, "<em>text</em>")
	assert.Contains(t, body, "<span>html</span>")

	_, err = r.Body(Unit{Path: filepath.Join(root, "en", "absent.html")})
	require.Error(t, err)
}

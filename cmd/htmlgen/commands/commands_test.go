package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
)

type cliEnv struct {
	root       string
	configPath string
	stderr     *bytes.Buffer
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{root: root, configPath: filepath.Join(root, "htmlgen.yaml"), stderr: &bytes.Buffer{}}

	env.write(t, "html-templates/base.html", "<html lang=\"{{ lang }}\"><title>{{ title }}</title>\n{{ content }}</html>\n")
	env.write(t, "translations.yml", "en:\n  title: Home\nfr:\n  title: Accueil\n")
	env.write(t, "alternate-links.yml", "en:\n  index.html: index.html\nfr:\n  index.html: index.html\n")
	env.write(t, "html-content/en/index.html", "<p>Hello</p>\n")
	env.write(t, "html-content/fr/index.html", "<p>Bonjour</p>\n")
	env.write(t, "htmlgen.yaml", `
paths:
  template: `+filepath.Join(root, "html-templates", "base.html")+`
  translations: `+filepath.Join(root, "translations.yml")+`
  alternate_links: `+filepath.Join(root, "alternate-links.yml")+`
  content: `+filepath.Join(root, "html-content")+`
  extra_head: `+filepath.Join(root, "html-extra-head")+`
  extra_scripts: `+filepath.Join(root, "html-extra-scripts")+`
  output: `+filepath.Join(root, "_site")+`
timestamps:
  timezone: UTC
`)
	return env
}

func (e *cliEnv) write(t *testing.T, rel, body string) {
	t.Helper()
	full := filepath.Join(e.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o600))
}

func (e *cliEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("htmlgen"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(&Global{Stderr: e.stderr}, cli)
}

func TestBuildIsDefaultCommand(t *testing.T) {
	env := newCLIEnv(t)

	require.NoError(t, env.run(t, "-c", env.configPath))

	data, err := os.ReadFile(filepath.Join(env.root, "_site", "fr", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html lang=\"fr\"><title>Accueil</title>\n      <p>Bonjour</p>\n</html>\n", string(data))
	assert.Contains(t, env.stderr.String(), "Site generated")
}

func TestBuildOutputOverride(t *testing.T) {
	env := newCLIEnv(t)
	out := filepath.Join(env.root, "public")

	require.NoError(t, env.run(t, "-c", env.configPath, "build", "-o", out))

	assert.FileExists(t, filepath.Join(out, "en", "index.html"))
	assert.NoDirExists(t, filepath.Join(env.root, "_site"))
}

func TestBuildJSONLogs(t *testing.T) {
	env := newCLIEnv(t)

	require.NoError(t, env.run(t, "-c", env.configPath, "--log-format", "json", "build"))

	scanner := bufio.NewScanner(strings.NewReader(env.stderr.String()))
	var lines int
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record), scanner.Text())
		lines++
	}
	assert.Positive(t, lines)
}

func TestBuildFailureExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(t *testing.T, env *cliEnv)
		wantCode int
	}{
		{
			name: "missing template",
			mutate: func(t *testing.T, env *cliEnv) {
				require.NoError(t, os.Remove(filepath.Join(env.root, "html-templates", "base.html")))
			},
			wantCode: 7,
		},
		{
			name: "content outside a language directory",
			mutate: func(t *testing.T, env *cliEnv) {
				env.write(t, "html-content/index.html", "<p>stray</p>")
			},
			wantCode: 2,
		},
		{
			name: "unresolved placeholder",
			mutate: func(t *testing.T, env *cliEnv) {
				env.write(t, "html-templates/base.html", "{{ nowhere }}{{ content }}")
			},
			wantCode: 11,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			tt.mutate(t, env)

			err := env.run(t, "-c", env.configPath)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
		})
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	env := newCLIEnv(t)

	err := env.run(t, "-c", filepath.Join(env.root, "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := &VersionCmd{out: &out}

	require.NoError(t, cmd.Run(nil, nil))
	assert.True(t, strings.HasPrefix(out.String(), "htmlgen "))
}

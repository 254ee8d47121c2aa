package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/site/html-content/en/index.html", false},
		{"/site/html-content/en/.index.html.swp", true},
		{"/site/html-content/en/index.html~", true},
		{"/site/html-content/en/.htmlgen-1234", true},
		{"/site/html-content/en/#index.html#", true},
		{"/site/html-content/en/Thumbs.db", true},
		{"/site/html-content/en/notes.swx", true},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, shouldIgnoreEvent(tt.path))
		})
	}
}

func TestWatchScopeHandle(t *testing.T) {
	f := newSiteFixture(t)
	scope, err := f.site(t).watchScope()
	require.NoError(t, err)
	ctx := context.Background()

	write := func(path string) fsnotify.Event { return fsnotify.Event{Name: path, Op: fsnotify.Write} }

	assert.True(t, scope.handle(ctx, nil, write(f.content("en/index.html"))))
	assert.True(t, scope.handle(ctx, nil, write(filepath.Join(f.cfg.Paths.ExtraHead, "en", "index.html"))))
	assert.True(t, scope.handle(ctx, nil, write(f.cfg.Paths.Template)))
	assert.True(t, scope.handle(ctx, nil, write(f.cfg.Paths.Translations)))

	// siblings of watched files share their directory but are not inputs
	assert.False(t, scope.handle(ctx, nil, write(filepath.Join(f.root, "generator", "README.md"))))
	assert.False(t, scope.handle(ctx, nil, write(f.output("en/index.html"))))
	assert.False(t, scope.handle(ctx, nil, write(f.content("en/.index.html.swp"))))
}

func TestWithin(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "site", "html-content")
	assert.True(t, within(root, root))
	assert.True(t, within(root, filepath.Join(root, "en", "index.html")))
	assert.False(t, within(root, root+"-old"))
	assert.False(t, within(root, filepath.Dir(root)))
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	rebuildReq, trigger, stop := newDebouncer(20 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
	}

	select {
	case <-rebuildReq:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-rebuildReq:
		t.Fatal("debouncer fired more than once")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchRebuildsOnContentChange(t *testing.T) {
	f := newSiteFixture(t)
	s := f.site(t, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	out := f.output("en/index.html")
	require.Eventually(t, func() bool {
		return strings.Contains(readFileOrEmpty(out), "<h1>Hello</h1>")
	}, 5*time.Second, 20*time.Millisecond)

	// The watcher registers after the initial build; keep rewriting until a
	// rebuild picks the change up.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(f.content("en/index.html"), []byte("<h1>Hello again</h1>\n"), 0o600)
		return strings.Contains(readFileOrEmpty(out), "<h1>Hello again</h1>")
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

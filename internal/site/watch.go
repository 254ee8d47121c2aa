package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/logfields"
	"git.home.luguber.info/inful/htmlgen/internal/observability"
)

// Watch builds the site, then rebuilds it whenever a content fragment, the
// template or a mapping file changes, until ctx is canceled. Failed builds
// are logged and do not stop the watcher.
func (s *Site) Watch(ctx context.Context) error {
	if _, err := s.Build(ctx); err != nil {
		observability.ErrorContext(ctx, "Initial build failed", logfields.Error(err))
	}

	scope, err := s.watchScope()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()
	scope.register(ctx, watcher)

	rebuildReq, trigger, stop := newDebouncer(s.debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.rebuildLoop(ctx, rebuildReq)
	}()
	defer wg.Wait()

	observability.InfoContext(ctx, "Watching for changes", logfields.Count(len(watcher.WatchList())))
	for {
		select {
		case <-ctx.Done():
			observability.InfoContext(ctx, "Watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if scope.handle(ctx, watcher, ev) {
				trigger()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			observability.WarnContext(ctx, "Watcher error", logfields.Error(werr))
		}
	}
}

// rebuildLoop runs one rebuild per request. Requests arriving while a build
// runs collapse into the single buffered slot, so builds never overlap and
// at most one more follows.
func (s *Site) rebuildLoop(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			observability.InfoContext(ctx, "Change detected; rebuilding site")
			if _, err := s.Build(ctx); err != nil && ctx.Err() == nil {
				observability.WarnContext(ctx, "Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// newDebouncer returns a request channel, a trigger that fires it once the
// triggers have been quiet for delay, and a stop function.
func newDebouncer(delay time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

// watchScope is the set of inputs a build reads.
type watchScope struct {
	trees  []string            // Watched recursively
	files  map[string]struct{} // Watched through their parent directory
	output string
}

func (s *Site) watchScope() (*watchScope, error) {
	p := s.cfg.Paths
	scope := &watchScope{files: make(map[string]struct{})}

	var err error
	if scope.output, err = absPath(p.Output); err != nil {
		return nil, err
	}
	for _, dir := range []string{p.Content, p.ExtraHead, p.ExtraScripts} {
		abs, err := absPath(dir)
		if err != nil {
			return nil, err
		}
		scope.trees = append(scope.trees, abs)
	}
	for _, file := range []string{p.Template, p.Translations, p.AlternateLinks} {
		abs, err := absPath(file)
		if err != nil {
			return nil, err
		}
		scope.files[abs] = struct{}{}
	}
	return scope, nil
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve path").
			WithContext("path", path).
			Build()
	}
	return abs, nil
}

func (w *watchScope) register(ctx context.Context, watcher *fsnotify.Watcher) {
	for _, tree := range w.trees {
		if _, err := os.Stat(tree); err != nil {
			observability.DebugContext(ctx, "Skipping missing watch root", logfields.Path(tree))
			continue
		}
		addDirsRecursive(ctx, watcher, tree)
	}
	dirs := make(map[string]struct{})
	for file := range w.files {
		dirs[filepath.Dir(file)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			observability.WarnContext(ctx, "Watch add failed", logfields.Path(dir), logfields.Error(err))
		}
	}
}

// handle reports whether ev touches a build input. New directories inside a
// watched tree are added to the watcher.
func (w *watchScope) handle(ctx context.Context, watcher *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) || w.inOutput(ev.Name) {
		return false
	}
	if _, ok := w.files[ev.Name]; ok {
		observability.DebugContext(ctx, "Input file changed", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))
		return true
	}
	if !w.inTree(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(ctx, watcher, ev.Name)
		}
	}
	observability.DebugContext(ctx, "Content changed", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))
	return true
}

func (w *watchScope) inTree(path string) bool {
	for _, tree := range w.trees {
		if within(tree, path) {
			return true
		}
	}
	return false
}

func (w *watchScope) inOutput(path string) bool {
	return within(w.output, path)
}

func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func addDirsRecursive(ctx context.Context, watcher *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				observability.WarnContext(ctx, "Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden files and editor droppings, which
// includes the writer's own temp files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

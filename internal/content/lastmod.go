package content

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"

	ferrors "git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/logfields"
)

// LastModifiedResolver reports when a content fragment last changed.
type LastModifiedResolver interface {
	LastModified(path string) (time.Time, error)
}

// MtimeResolver uses the filesystem modification time.
type MtimeResolver struct{}

// LastModified implements LastModifiedResolver.
func (MtimeResolver) LastModified(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat content").
			WithContext("path", path).
			Build()
	}
	return info.ModTime(), nil
}

// GitResolver uses the author time of the latest commit touching a file.
// Files outside a repository, or never committed, fall back to their
// modification time so fresh pages still build.
type GitResolver struct {
	fallback LastModifiedResolver

	mu    sync.Mutex
	repos map[string]*git.Repository // keyed by the directory a lookup started from
}

// NewGitResolver creates a resolver backed by the repository enclosing each file.
func NewGitResolver() *GitResolver {
	return &GitResolver{
		fallback: MtimeResolver{},
		repos:    make(map[string]*git.Repository),
	}
}

// LastModified implements LastModifiedResolver.
func (g *GitResolver) LastModified(path string) (time.Time, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve content path").
			WithContext("path", path).
			Build()
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	repo, err := g.repoFor(filepath.Dir(abs))
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			slog.Debug("No git repository, using mtime", logfields.Path(path))
			return g.fallback.LastModified(path)
		}
		return time.Time{}, ferrors.GitError("failed to open repository").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	when, found, err := latestCommitTime(repo, abs)
	if err != nil {
		return time.Time{}, ferrors.GitError("failed to read file history").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if !found {
		slog.Debug("File not committed, using mtime", logfields.Path(path))
		return g.fallback.LastModified(path)
	}
	return when, nil
}

func (g *GitResolver) repoFor(dir string) (*git.Repository, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if repo, ok := g.repos[dir]; ok {
		return repo, nil
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	g.repos[dir] = repo
	return repo, nil
}

func latestCommitTime(repo *git.Repository, abs string) (time.Time, bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return time.Time{}, false, err
	}
	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return time.Time{}, false, err
	}
	rel = filepath.ToSlash(rel)

	head, err := repo.Head()
	if err != nil {
		// Empty repository: nothing committed yet.
		return time.Time{}, false, nil
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), FileName: &rel})
	if err != nil {
		return time.Time{}, false, err
	}
	defer iter.Close()

	commit, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return commit.Author.When, true, nil
}

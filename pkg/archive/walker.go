package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/romtools/romtrace/pkg/models"
)

// Walker enumerates the entries of an archive tree
type Walker struct {
	rootPath string
	excludes []string
}

// NewWalker creates a walker rooted at rootPath. It fails if the path does
// not exist or is not a directory.
func NewWalker(rootPath string, excludes []string) (*Walker, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Walker{rootPath: absPath, excludes: excludes}, nil
}

// Root returns the absolute archive root
func (w *Walker) Root() string {
	return w.rootPath
}

// Walk returns all descendants of the root, files and directories, with
// paths relative to the root. Entries under a version-control metadata
// directory (a ".git" path segment at any depth) are skipped, as are
// entries matching the exclude patterns.
//
// Symlinks are never followed: WalkDir uses lstat semantics, so a symlink
// is reported as a single (non-dir) entry and cycles cannot cause
// non-termination. The walk stops early when ctx is cancelled.
func (w *Walker) Walk(ctx context.Context) ([]models.ArchiveEntry, error) {
	var entries []models.ArchiveEntry

	err := filepath.WalkDir(w.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(w.rootPath, p)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if isVersionControlPath(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldExclude(relPath, w.excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, models.ArchiveEntry{
			RelativePath: relPath,
			AbsolutePath: p,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			IsDir:        d.IsDir(),
			IsSymlink:    info.Mode()&os.ModeSymlink != 0,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk archive: %w", err)
	}

	return entries, nil
}

// isVersionControlPath reports whether any segment of the slash-separated
// relative path is a git metadata directory
func isVersionControlPath(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}

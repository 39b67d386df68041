// Package dupes finds files that are byte-identical between two
// directory trees at the same relative path.
package dupes

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/romtools/romtrace/pkg/hashing"
	"github.com/romtools/romtrace/pkg/logging"
)

// Result partitions the union of both trees' files: Identical holds
// common paths with equal digests, Different everything else (common
// paths with differing content plus paths present on one side only).
type Result struct {
	Identical []string
	Different []string
}

// Compare walks both trees and digests every common path. Files under a
// .git segment are ignored. Unreadable common files are logged and
// counted as different.
func Compare(ctx context.Context, dir1, dir2 string, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	files1, err := relativeFiles(dir1)
	if err != nil {
		return nil, err
	}
	files2, err := relativeFiles(dir2)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for p := range files1 {
		if _, ok := files2[p]; !ok {
			res.Different = append(res.Different, p)
		}
	}
	for p := range files2 {
		if _, ok := files1[p]; !ok {
			res.Different = append(res.Different, p)
		}
	}

	for p := range files1 {
		if _, ok := files2[p]; !ok {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		h1, err1 := hashing.DigestFile(filepath.Join(dir1, filepath.FromSlash(p)))
		h2, err2 := hashing.DigestFile(filepath.Join(dir2, filepath.FromSlash(p)))
		if err1 != nil || err2 != nil {
			logger.Warn(ctx, "could not compare file", logging.Fields{"path": p})
			res.Different = append(res.Different, p)
			continue
		}

		if h1 == h2 {
			res.Identical = append(res.Identical, p)
		} else {
			res.Different = append(res.Different, p)
		}
	}

	sort.Strings(res.Identical)
	sort.Strings(res.Different)
	return res, nil
}

// relativeFiles lists every regular file under root as a slash-separated
// relative path, skipping .git directories
func relativeFiles(root string) (map[string]struct{}, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	files := make(map[string]struct{})
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if hasGitSegment(rel) || !d.Type().IsRegular() {
			return nil
		}
		files[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

func hasGitSegment(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}

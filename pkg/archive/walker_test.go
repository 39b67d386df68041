package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// buildTree creates files under root; paths ending in / become directories
func buildTree(t *testing.T, root string, paths []string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatalf("failed to create dir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", p, err)
		}
		if err := os.WriteFile(full, []byte("content of "+p+"\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", p, err)
		}
	}
}

func walkPaths(t *testing.T, root string, excludes []string) map[string]bool {
	t.Helper()
	w, err := NewWalker(root, excludes)
	if err != nil {
		t.Fatalf("NewWalker() error: %v", err)
	}
	entries, err := w.Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	got := make(map[string]bool, len(entries))
	for _, e := range entries {
		got[e.RelativePath] = e.IsDir
	}
	return got
}

func TestWalkEnumeratesFilesAndDirs(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{
		"a.txt",
		"sub/b.txt",
		"sub/deeper/c.bin",
		"empty/",
	})

	got := walkPaths(t, root, nil)

	wantFiles := []string{"a.txt", "sub/b.txt", "sub/deeper/c.bin"}
	for _, f := range wantFiles {
		isDir, ok := got[f]
		if !ok || isDir {
			t.Errorf("expected file entry %s, got present=%v isDir=%v", f, ok, isDir)
		}
	}
	wantDirs := []string{"sub", "sub/deeper", "empty"}
	for _, d := range wantDirs {
		isDir, ok := got[d]
		if !ok || !isDir {
			t.Errorf("expected dir entry %s, got present=%v isDir=%v", d, ok, isDir)
		}
	}
}

func TestWalkSkipsGitMetadata(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{
		"a.txt",
		".git/config",
		".git/objects/ab/cdef",
		"vendor/.git/HEAD",
		"vendor/real.txt",
	})

	got := walkPaths(t, root, nil)

	for p := range got {
		if isVersionControlPath(p) {
			t.Errorf("git metadata path leaked into walk: %s", p)
		}
	}
	if _, ok := got["vendor/real.txt"]; !ok {
		t.Error("sibling of nested .git dir should still be walked")
	}
}

func TestWalkExcludePatterns(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{
		"keep.txt",
		"drop.tmp",
		"cache/drop.txt",
	})

	got := walkPaths(t, root, []string{"*.tmp", "cache/"})

	if _, ok := got["drop.tmp"]; ok {
		t.Error("*.tmp pattern should exclude drop.tmp")
	}
	if _, ok := got["cache/drop.txt"]; ok {
		t.Error("cache/ pattern should exclude the whole directory")
	}
	if _, ok := got["keep.txt"]; !ok {
		t.Error("keep.txt should survive the excludes")
	}
}

func TestWalkDoesNotFollowSymlinks(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"real/a.txt"})

	// Self-referencing cycle: loop -> root
	if err := os.Symlink(root, filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	w, err := NewWalker(root, nil)
	if err != nil {
		t.Fatalf("NewWalker() error: %v", err)
	}
	entries, err := w.Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk() should terminate on symlink cycles: %v", err)
	}

	for _, e := range entries {
		if e.RelativePath == "loop" {
			if e.IsDir {
				t.Error("symlink should not be reported as a directory")
			}
			if !e.IsSymlink {
				t.Error("symlink entry should carry IsSymlink")
			}
		}
		if len(e.RelativePath) > len("loop/") && e.RelativePath[:5] == "loop/" {
			t.Errorf("walker descended into symlink: %s", e.RelativePath)
		}
	}
}

func TestWalkCancellation(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"a.txt", "b.txt"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, err := NewWalker(root, nil)
	if err != nil {
		t.Fatalf("NewWalker() error: %v", err)
	}
	if _, err := w.Walk(ctx); err == nil {
		t.Error("Walk() with cancelled context should return an error")
	}
}

func TestNewWalkerRejectsFiles(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"a.txt"})

	if _, err := NewWalker(filepath.Join(root, "a.txt"), nil); err == nil {
		t.Error("NewWalker() on a regular file should fail")
	}
}

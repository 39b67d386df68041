// Package proplist works with proprietary-files.txt vendor blob lists:
// parsing entries, comparing lists against an extracted tree, and
// finding duplicates across device folders.
package proplist

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListFileName is the conventional blob list name inside a device folder
const ListFileName = "proprietary-files.txt"

// normalizeEntry strips the build-system decorations from one
// semicolon-separated field: a leading "-" (no fixup) and a "SYMLINK="
// prefix both wrap a plain file path.
func normalizeEntry(field string) string {
	w := strings.TrimSpace(field)
	w = strings.TrimPrefix(w, "-")
	w = strings.TrimPrefix(w, "SYMLINK=")
	return w
}

// parseList reads one blob list, feeding every normalized entry to emit.
// Blank lines and comments are skipped.
func parseList(path string, emit func(entry string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob list: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Split(line, ";") {
			emit(normalizeEntry(field))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read blob list: %w", err)
	}
	return nil
}

// Entries collects the union of all entries across the blob lists of the
// given device folders
func Entries(deviceFolders []string) (map[string]struct{}, error) {
	entries := make(map[string]struct{})
	for _, folder := range deviceFolders {
		err := parseList(filepath.Join(folder, ListFileName), func(e string) {
			entries[e] = struct{}{}
		})
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Duplicates reports entries that appear more than once across the blob
// lists of the given device folders, in encounter order
func Duplicates(deviceFolders []string) ([]string, error) {
	seen := make(map[string]struct{})
	var dupes []string
	for _, folder := range deviceFolders {
		err := parseList(filepath.Join(folder, ListFileName), func(e string) {
			if _, ok := seen[e]; ok {
				dupes = append(dupes, e)
				return
			}
			seen[e] = struct{}{}
		})
		if err != nil {
			return nil, err
		}
	}
	return dupes, nil
}

// TreeFiles enumerates every file under root as a slash-separated path
// relative to root. Symlinks count as files and are not followed.
func TreeFiles(root string) (map[string]struct{}, error) {
	files := make(map[string]struct{})
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree: %w", err)
	}
	return files, nil
}

// MissingFromLists returns the tree files that no blob list mentions,
// sorted
func MissingFromLists(treeFiles, entries map[string]struct{}) []string {
	var missing []string
	for f := range treeFiles {
		if _, ok := entries[f]; !ok {
			missing = append(missing, f)
		}
	}
	sort.Strings(missing)
	return missing
}

// AbsentFromTree returns the raw list lines of the device folder's blob
// list that name a file the tree does not carry. Comments, blanks and
// multi-field lines pass; a plain (or "-"-prefixed) path must exist.
func AbsentFromTree(deviceFolder string, treeFiles map[string]struct{}) ([]string, error) {
	f, err := os.Open(filepath.Join(deviceFolder, ListFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open blob list: %w", err)
	}
	defer f.Close()

	var absent []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.Contains(line, ";") {
			continue
		}
		path := strings.TrimPrefix(line, "-")
		if _, ok := treeFiles[path]; !ok {
			absent = append(absent, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blob list: %w", err)
	}
	return absent, nil
}

// MissedButAvailable returns entries of the old lists that the new lists
// dropped but which still exist in the tree, sorted. Useful when porting
// a device folder to a new release.
func MissedButAvailable(treeFiles, newEntries, oldEntries map[string]struct{}) []string {
	var missed []string
	for e := range oldEntries {
		if _, inNew := newEntries[e]; inNew {
			continue
		}
		if _, inTree := treeFiles[e]; inTree {
			missed = append(missed, e)
		}
	}
	sort.Strings(missed)
	return missed
}

// FileInfo annotates a path with its symlink target, or returns "" for
// anything else
func FileInfo(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return ""
	}
	target, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	return "symlink -> " + target
}

package archive

import (
	"path/filepath"
	"strings"
)

// shouldExclude reports whether a slash-relative archive path matches any
// of the exclude patterns. Three pattern forms are recognized:
//   - basename globs: *.tmp, *.odex
//   - directory prefixes ending in a slash: lost+found/, __MACOSX/
//   - path globs, optionally anchored at any depth: build/*, **/test/*
func shouldExclude(relativePath string, patterns []string) bool {
	path := filepath.ToSlash(relativePath)
	base := filepath.Base(relativePath)

	for _, raw := range patterns {
		if raw == "" {
			continue
		}
		pattern := filepath.ToSlash(raw)

		switch {
		case strings.HasSuffix(pattern, "/"):
			if matchDirPattern(path, strings.TrimSuffix(pattern, "/")) {
				return true
			}
		case strings.Contains(pattern, "**"):
			if matchAnyDepth(path, base, pattern) {
				return true
			}
		case strings.Contains(pattern, "/"):
			if globMatch(pattern, path) || strings.HasSuffix(path, pattern) {
				return true
			}
		default:
			if globMatch(pattern, base) {
				return true
			}
		}
	}
	return false
}

// matchDirPattern excludes the named directory itself and everything
// below it, at the root or at any depth
func matchDirPattern(path, dir string) bool {
	return path == dir ||
		strings.HasPrefix(path, dir+"/") ||
		strings.Contains(path, "/"+dir+"/")
}

// matchAnyDepth handles **/suffix patterns. The suffix glob is tried
// against the basename, the path tail and every path component.
func matchAnyDepth(path, base, pattern string) bool {
	prefix, suffix, found := strings.Cut(pattern, "**/")
	if !found || prefix != "" {
		return false
	}
	if globMatch(suffix, base) {
		return true
	}
	if path == suffix || strings.HasSuffix(path, "/"+suffix) {
		return true
	}
	for _, part := range strings.Split(path, "/") {
		if globMatch(suffix, part) {
			return true
		}
	}
	return false
}

func globMatch(pattern, name string) bool {
	matched, _ := filepath.Match(pattern, name)
	return matched
}

// Package textdiff measures divergence between two text buffers as the
// size of their unified line diff.
package textdiff

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrNotText is returned when content cannot be decoded as text. Callers
// must catch this and skip diff-based comparison for the file without
// aborting the run.
var ErrNotText = errors.New("content is not text")

// Labels used in rendered diffs. The repository side is always "old" and
// the archive side "new".
const (
	fromFile = "InRepo"
	toFile   = "InArchive"
)

// Lines decodes b as UTF-8 text and splits it into lines with line
// endings preserved. Content containing NUL bytes or invalid UTF-8 yields
// ErrNotText.
func Lines(b []byte) ([]string, error) {
	if bytes.IndexByte(b, 0) >= 0 || !utf8.Valid(b) {
		return nil, ErrNotText
	}
	if len(b) == 0 {
		return nil, nil
	}
	return difflib.SplitLines(string(b)), nil
}

// UnifiedLineCount renders the unified diff between oldLines and newLines
// and returns its total line count (file headers, hunk headers and
// added/removed/context lines). Identical inputs yield zero. Smaller is
// closer.
func UnifiedLineCount(oldLines, newLines []string) (int, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        oldLines,
		B:        newLines,
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to render diff: %w", err)
	}
	return countLines(text), nil
}

// countLines counts the lines of rendered diff text, tolerating a missing
// trailing newline on the final line
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

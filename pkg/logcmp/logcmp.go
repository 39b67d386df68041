// Package logcmp compares two log captures while tolerating line
// reordering: a line counts as matched if the other log carries it
// anywhere within a configurable window around the same position.
package logcmp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// DefaultContext is the default matching window in lines
const DefaultContext = 100

// DiffEntry is one unmatched line. OldLine or NewLine is -1 for lines
// present on only one side; both are 1-based otherwise.
type DiffEntry struct {
	OldLine int
	NewLine int
	Content string
}

// ReadLines reads a log file into lines
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return lines, nil
}

// PreprocessDmesg strips the leading "[ timestamp]" column from every
// line that carries one, so captures from different boots line up
func PreprocessDmesg(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if idx := strings.Index(line, "]"); idx >= 0 {
			out[i] = strings.TrimSpace(line[idx+1:])
		} else {
			out[i] = line
		}
	}
	return out
}

// Compare matches every line of oldLines against newLines within a
// +/- window of its own position; each new-side line is consumed at most
// once. Unmatched lines from either side come back sorted by their line
// number.
func Compare(oldLines, newLines []string, window int) []DiffEntry {
	if window < 0 {
		window = DefaultContext
	}

	var result []DiffEntry
	used := make(map[int]struct{})

	for i, line := range oldLines {
		found := false
		start := i - window
		if start < 0 {
			start = 0
		}
		end := i + window + 1
		if end > len(newLines) {
			end = len(newLines)
		}

		trimmed := strings.TrimSpace(line)
		for j := start; j < end; j++ {
			if _, taken := used[j]; taken {
				continue
			}
			if trimmed == strings.TrimSpace(newLines[j]) {
				used[j] = struct{}{}
				found = true
				break
			}
		}

		if !found {
			result = append(result, DiffEntry{OldLine: i + 1, NewLine: -1, Content: trimmed})
		}
	}

	for j, line := range newLines {
		if _, taken := used[j]; !taken {
			result = append(result, DiffEntry{OldLine: -1, NewLine: j + 1, Content: strings.TrimSpace(line)})
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return sortKey(result[a]) < sortKey(result[b])
	})
	return result
}

func sortKey(e DiffEntry) int {
	if e.OldLine != -1 {
		return e.OldLine
	}
	return e.NewLine
}

// Render writes the diff entries as "old new content" rows, removed
// lines in red and added lines in green when colors are enabled
func Render(w io.Writer, entries []DiffEntry, colored bool) error {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, e := range entries {
		oldNum, newNum := "-", "-"
		if e.OldLine != -1 {
			oldNum = fmt.Sprintf("%d", e.OldLine)
		}
		if e.NewLine != -1 {
			newNum = fmt.Sprintf("%d", e.NewLine)
		}

		row := fmt.Sprintf("%6s %6s %s", oldNum, newNum, e.Content)

		var err error
		switch {
		case !colored:
			_, err = fmt.Fprintln(w, row)
		case e.OldLine == -1:
			_, err = green.Fprintln(w, row)
		case e.NewLine == -1:
			_, err = red.Fprintln(w, row)
		default:
			_, err = fmt.Fprintln(w, row)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

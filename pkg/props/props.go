// Package props compares Android property files: a custom build.prop
// style file against the merged properties of every *.prop file under a
// stock tree.
package props

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Line is one line of a property file. Non-property lines (comments and
// blanks) are preserved verbatim for merged-output rendering.
type Line struct {
	IsProperty bool
	Name       string
	Value      string
	Raw        string
}

// ParseFile parses a property file into its lines. Lines that are
// neither blank, comment nor name=value are an error.
func ParseFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open property file: %w", err)
	}
	defer f.Close()

	var lines []Line
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())

		if text == "" || strings.HasPrefix(text, "#") {
			lines = append(lines, Line{Raw: text})
			continue
		}

		name, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("unrecognized line in %s: %q", path, text)
		}
		lines = append(lines, Line{
			IsProperty: true,
			Name:       strings.TrimSpace(name),
			Value:      strings.TrimSpace(value),
			Raw:        text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read property file: %w", err)
	}
	return lines, nil
}

// Properties extracts the name-to-value map from parsed lines
func Properties(lines []Line) map[string]string {
	props := make(map[string]string)
	for _, l := range lines {
		if l.IsProperty {
			props[l.Name] = l.Value
		}
	}
	return props
}

// FindPropFiles lists every *.prop file under root, recursively
func FindPropFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".prop") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for prop files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadStockProperties merges the properties of all given prop files.
// Later files win on name collisions. Unparseable lines are skipped, not
// fatal: stock trees routinely contain odd prop files.
func LoadStockProperties(files []string) (map[string]string, []string) {
	props := make(map[string]string)
	var warnings []string

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("error reading %s: %v", path, err))
			continue
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			name, value, ok := strings.Cut(text, "=")
			if !ok {
				warnings = append(warnings, fmt.Sprintf("failed to parse %s: %s", path, text))
				continue
			}
			props[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
		if err := scanner.Err(); err != nil {
			warnings = append(warnings, fmt.Sprintf("error reading %s: %v", path, err))
		}
		f.Close()
	}
	return props, warnings
}

// Difference is one property whose custom value disagrees with the
// stock tree, or which the stock tree lacks entirely
type Difference struct {
	Name           string
	Custom         string
	Stock          string
	MissingInStock bool
}

// Compare reports every custom property that differs from or is absent
// in the stock set, sorted by name
func Compare(custom, stock map[string]string) []Difference {
	var diffs []Difference
	for name, customValue := range custom {
		stockValue, ok := stock[name]
		if !ok {
			diffs = append(diffs, Difference{Name: name, Custom: customValue, MissingInStock: true})
			continue
		}
		if customValue != stockValue {
			diffs = append(diffs, Difference{Name: name, Custom: customValue, Stock: stockValue})
		}
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Name < diffs[j].Name })
	return diffs
}

// WriteMerged renders the custom file with differing properties replaced
// by their stock values. Properties missing from stock keep the custom
// value, and comments and blank lines pass through untouched.
func WriteMerged(path string, lines []Line, diffs []Difference) error {
	byName := make(map[string]Difference, len(diffs))
	for _, d := range diffs {
		byName[d.Name] = d
	}

	var b strings.Builder
	for _, l := range lines {
		if !l.IsProperty {
			b.WriteString(l.Raw)
			b.WriteByte('\n')
			continue
		}
		d, ok := byName[l.Name]
		switch {
		case ok && !d.MissingInStock:
			fmt.Fprintf(&b, "%s=%s\n", l.Name, d.Stock)
		case ok:
			fmt.Fprintf(&b, "%s=%s\n", l.Name, d.Custom)
		default:
			b.WriteString(l.Raw)
			b.WriteByte('\n')
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write merged property file: %w", err)
	}
	return nil
}

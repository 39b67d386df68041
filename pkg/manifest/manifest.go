// Package manifest compares vendor interface manifests: the HAL records
// of one manifest against those found anywhere in a stock tree, matched
// by name and compared structurally.
package manifest

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// node is a generic XML element used for structural HAL comparison
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

// HAL is one <hal> record of a manifest
type HAL struct {
	Name string
	elem node
}

// Manifest is a parsed vendor interface manifest
type Manifest struct {
	Type        string
	Version     string
	TargetLevel string
	HALs        []HAL
}

type manifestDoc struct {
	XMLName     xml.Name
	Type        string `xml:"type,attr"`
	Version     string `xml:"version,attr"`
	TargetLevel string `xml:"target-level,attr"`
	HALs        []node `xml:"hal"`
}

func parseDoc(path string) (*manifestDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var doc manifestDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &doc, nil
}

func docToManifest(doc *manifestDoc) *Manifest {
	m := &Manifest{Type: doc.Type, Version: doc.Version, TargetLevel: doc.TargetLevel}
	for _, hal := range doc.HALs {
		m.HALs = append(m.HALs, HAL{Name: childText(hal, "name"), elem: hal})
	}
	return m
}

// Parse reads one manifest file
func Parse(path string) (*Manifest, error) {
	doc, err := parseDoc(path)
	if err != nil {
		return nil, err
	}
	if doc.XMLName.Local != "manifest" {
		return nil, fmt.Errorf("%s: root element is <%s>, not <manifest>", path, doc.XMLName.Local)
	}
	return docToManifest(doc), nil
}

// childText returns the trimmed text of the first direct child with the
// given tag
func childText(n node, tag string) string {
	for _, c := range n.Children {
		if c.XMLName.Local == tag {
			return strings.TrimSpace(c.Content)
		}
	}
	return ""
}

// StockManifest is one manifest file found in the stock tree
type StockManifest struct {
	File string
	HALs []HAL
}

// LoadStockManifests parses every *.xml under root whose manifest type
// matches typ. Files that are not parseable manifests are reported as
// warnings and skipped, not fatal: stock trees carry plenty of
// unrelated XML.
func LoadStockManifests(root, typ string) ([]StockManifest, []string, error) {
	var manifests []StockManifest
	var warnings []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".xml") {
			return nil
		}

		doc, err := parseDoc(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to parse %s", p))
			return nil
		}
		// Non-manifest XML and manifests of another type are expected in a
		// stock tree; only broken XML is worth a warning.
		if doc.XMLName.Local != "manifest" || doc.Type != typ {
			return nil
		}
		manifests = append(manifests, StockManifest{File: p, HALs: docToManifest(doc).HALs})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan stock tree: %w", err)
	}
	return manifests, warnings, nil
}

// HALStatus classifies one HAL record against the stock tree
type HALStatus int

const (
	// HALMatch means a stock HAL with the same name is structurally equal
	HALMatch HALStatus = iota
	// HALMismatch means a stock HAL with the same name differs
	HALMismatch
	// HALNotFound means no stock manifest carries a HAL with this name
	HALNotFound
)

// HALResult is the comparison outcome for one HAL of the custom manifest
type HALResult struct {
	Name      string
	Status    HALStatus
	StockFile string // set for Match and Mismatch
}

// Compare checks every HAL of the custom manifest against the stock
// manifests, in manifest order
func Compare(custom *Manifest, stock []StockManifest) []HALResult {
	var results []HALResult
	for _, hal := range custom.HALs {
		srec, file := findStockHAL(stock, hal.Name)
		switch {
		case srec == nil:
			results = append(results, HALResult{Name: hal.Name, Status: HALNotFound})
		case canonical(srec.elem) != canonical(hal.elem):
			results = append(results, HALResult{Name: hal.Name, Status: HALMismatch, StockFile: file})
		default:
			results = append(results, HALResult{Name: hal.Name, Status: HALMatch, StockFile: file})
		}
	}
	return results
}

func findStockHAL(stock []StockManifest, name string) (*HAL, string) {
	for _, m := range stock {
		for i := range m.HALs {
			if m.HALs[i].Name == name {
				return &m.HALs[i], m.File
			}
		}
	}
	return nil, ""
}

// canonical renders an element into a formatting-insensitive form:
// attributes sorted, text trimmed, child elements grouped by tag with
// tag groups sorted. Ordering of same-tag siblings stays significant.
func canonical(n node) string {
	var b strings.Builder
	b.WriteString(n.XMLName.Local)

	attrs := make([]string, 0, len(n.Attrs))
	for _, a := range n.Attrs {
		attrs = append(attrs, a.Name.Local+"="+a.Value)
	}
	sort.Strings(attrs)
	if len(attrs) > 0 {
		b.WriteString("(" + strings.Join(attrs, ",") + ")")
	}

	if len(n.Children) == 0 {
		if text := strings.TrimSpace(n.Content); text != "" {
			b.WriteString("=" + text)
		}
		return b.String()
	}

	groups := make(map[string][]string)
	for _, c := range n.Children {
		groups[c.XMLName.Local] = append(groups[c.XMLName.Local], canonical(c))
	}
	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	b.WriteString("{")
	for i, tag := range tags {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(strings.Join(groups[tag], ";"))
	}
	b.WriteString("}")
	return b.String()
}

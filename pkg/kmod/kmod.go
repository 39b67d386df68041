// Package kmod compares kernel module directories and validates that
// every module's dependency closure is present, using modinfo for
// dependency extraction.
package kmod

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// SizePair is one module present in both directories with its sizes
type SizePair struct {
	Name       string
	StockSize  int64
	CustomSize int64
}

// CompareResult describes how two module directories relate
type CompareResult struct {
	Common  []SizePair
	Missing []string // in stock, not in custom
	Extra   []string // in custom, not in stock
}

// ListModules returns the sorted *.ko file names directly inside dir
func ListModules(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access modules directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules directory: %w", err)
	}

	var modules []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".ko") {
			modules = append(modules, e.Name())
		}
	}
	sort.Strings(modules)
	return modules, nil
}

// CompareDirs compares the *.ko files of a stock and a custom modules
// directory by name and size
func CompareDirs(stockDir, customDir string) (*CompareResult, error) {
	stock, err := ListModules(stockDir)
	if err != nil {
		return nil, err
	}
	custom, err := ListModules(customDir)
	if err != nil {
		return nil, err
	}

	customSet := make(map[string]struct{}, len(custom))
	for _, m := range custom {
		customSet[m] = struct{}{}
	}
	stockSet := make(map[string]struct{}, len(stock))
	for _, m := range stock {
		stockSet[m] = struct{}{}
	}

	res := &CompareResult{}
	for _, m := range stock {
		if _, ok := customSet[m]; !ok {
			res.Missing = append(res.Missing, m)
			continue
		}
		ss, err := os.Stat(filepath.Join(stockDir, m))
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		cs, err := os.Stat(filepath.Join(customDir, m))
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		res.Common = append(res.Common, SizePair{Name: m, StockSize: ss.Size(), CustomSize: cs.Size()})
	}
	for _, m := range custom {
		if _, ok := stockSet[m]; !ok {
			res.Extra = append(res.Extra, m)
		}
	}
	return res, nil
}

// DependsFunc extracts the dependency module names of one .ko file
type DependsFunc func(ctx context.Context, koPath string) ([]string, error)

// ModinfoDepends queries modinfo -F depends for the module's direct
// dependencies
func ModinfoDepends(ctx context.Context, koPath string) ([]string, error) {
	out, err := exec.CommandContext(ctx, "modinfo", "-F", "depends", koPath).Output()
	if err != nil {
		return nil, fmt.Errorf("modinfo failed for %s: %w", koPath, err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return nil, nil
	}

	var deps []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			deps = append(deps, d)
		}
	}
	return deps, nil
}

// ModuleDeps is one module's dependency report
type ModuleDeps struct {
	Name    string // file name without the .ko extension
	Depends []string
	Missing []string // dependencies with no .ko file in the directory
}

// Validator checks that a modules directory is dependency-closed
type Validator struct {
	depends DependsFunc
}

// NewValidator creates a validator; a nil depends falls back to modinfo
func NewValidator(depends DependsFunc) *Validator {
	if depends == nil {
		depends = ModinfoDepends
	}
	return &Validator{depends: depends}
}

// Validate reports the dependencies of every module in dir and which of
// them have no corresponding .ko file there, sorted by module name
func (v *Validator) Validate(ctx context.Context, dir string) ([]ModuleDeps, error) {
	modules, err := ListModules(dir)
	if err != nil {
		return nil, err
	}

	available := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		available[strings.TrimSuffix(m, ".ko")] = struct{}{}
	}

	var reports []ModuleDeps
	for _, m := range modules {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		deps, err := v.depends(ctx, filepath.Join(dir, m))
		if err != nil {
			return nil, err
		}
		sort.Strings(deps)

		report := ModuleDeps{Name: strings.TrimSuffix(m, ".ko"), Depends: deps}
		for _, d := range deps {
			if _, ok := available[d]; !ok {
				report.Missing = append(report.Missing, d)
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

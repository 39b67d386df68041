package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/romtools/romtrace/pkg/models"
)

// WriteMergeScript emits a POSIX shell script with one merge-tool
// invocation per diverged file. The script only describes the work: it
// runs whatever $MERGE_TOOL names (vimdiff by default) against the
// archive copy and the export-directory copy of each path, and performs
// no merging itself.
func WriteMergeScript(report *models.MatchReport, scriptPath, exportDir string) error {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Generated merge helper. Review before running.\n")
	b.WriteString("# Each line opens one diverged file in the configured merge tool.\n\n")
	fmt.Fprintf(&b, "ARCHIVE_ROOT=%s\n", shellQuote(report.ArchiveRoot))
	fmt.Fprintf(&b, "EXPORT_DIR=%s\n\n", shellQuote(exportDir))

	for _, res := range report.Diverged {
		fmt.Fprintf(&b, "\"${MERGE_TOOL:-vimdiff}\" \"${ARCHIVE_ROOT}\"/%s \"${EXPORT_DIR}\"/%s\n",
			shellQuote(res.RelativePath), shellQuote(res.RelativePath))
	}

	if dir := filepath.Dir(scriptPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create script directory: %w", err)
		}
	}
	if err := os.WriteFile(scriptPath, []byte(b.String()), 0755); err != nil {
		return fmt.Errorf("failed to write merge script: %w", err)
	}
	return nil
}

// shellQuote single-quotes a string for POSIX sh
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

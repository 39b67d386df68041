package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/romtools/romtrace/pkg/models"
)

// WriteReport writes the report to a file in the given format
// ("human" or "json")
func WriteReport(report *models.MatchReport, path, format string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	switch format {
	case "json":
		return NewJSONFormatter(f).Complete(report)
	case "human", "":
		// Replay of the bucketed findings plus the summary, path-sorted
		replay := &ProgressFormatter{writer: f, verbose: true}
		return replay.Complete(report)
	default:
		return fmt.Errorf("unsupported report format: %s (use: human, json)", format)
	}
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/romtools/romtrace/pkg/models"
)

// JSONFormatter emits the final report as a single JSON document.
// Per-file results are silent; everything is in the report.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONFormatter{writer: writer}
}

// Start does nothing for JSON output
func (f *JSONFormatter) Start(totalFiles int) error {
	return nil
}

// Result does nothing for JSON output
func (f *JSONFormatter) Result(res *models.FileResult) error {
	return nil
}

// Complete marshals the full report
func (f *JSONFormatter) Complete(report *models.MatchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := f.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

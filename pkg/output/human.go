package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/romtools/romtrace/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	verbose    bool
}

// NewHumanFormatter creates a new human-readable formatter. With verbose
// enabled, unchanged files are reported too.
func NewHumanFormatter(writer io.Writer, verbose bool) *HumanFormatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &HumanFormatter{writer: writer, verbose: verbose}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(totalFiles int) error {
	f.totalFiles = totalFiles
	fmt.Fprintf(f.writer, "Comparing %d archive entries against history\n\n", totalFiles)
	return nil
}

// Result prints one classified entry
func (f *HumanFormatter) Result(res *models.FileResult) error {
	switch res.Kind {
	case models.MatchUnchanged:
		if f.verbose {
			fmt.Fprintf(f.writer, "Unchanged file: %s\n", res.RelativePath)
		}
	case models.MatchMissingDir:
		fmt.Fprintf(f.writer, "Missing directory: %s\n", res.RelativePath)
	case models.MatchMissingFile:
		fmt.Fprintf(f.writer, "Missing file: %s\n", res.RelativePath)
	case models.MatchHistorical:
		fmt.Fprintf(f.writer, "Older file: %s -- matching commit: %s (%d revisions from head)\n",
			res.RelativePath, res.Revision, res.DistanceFromHead)
	case models.MatchClosest:
		fmt.Fprintf(f.writer, "Differing file without match: %s -- closest commit: %s (lines changed %d)\n",
			res.RelativePath, res.Revision, res.DiffLines)
	case models.MatchDiverged:
		fmt.Fprintf(f.writer, "Differing file without match: %s\n", res.RelativePath)
	case models.MatchError:
		fmt.Fprintf(f.writer, "Skipping file: %s (%v)\n", res.RelativePath, res.Err)
	}
	return nil
}

// Complete prints the run summary
func (f *HumanFormatter) Complete(report *models.MatchReport) error {
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Comparison completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Summary:\n")
	fmt.Fprintf(f.writer, "  Files scanned:        %d\n", report.Stats.FilesScanned)
	fmt.Fprintf(f.writer, "  Dirs scanned:         %d\n", report.Stats.DirsScanned)
	fmt.Fprintf(f.writer, "  Unchanged:            %d\n", report.Stats.FilesUnchanged)
	fmt.Fprintf(f.writer, "  Matched historical:   %d\n", report.Stats.FilesMatched)
	fmt.Fprintf(f.writer, "  Diverged:             %d\n", report.Stats.FilesDiverged)
	fmt.Fprintf(f.writer, "  Missing files:        %d\n", report.Stats.FilesMissing)
	fmt.Fprintf(f.writer, "  Missing dirs:         %d\n", report.Stats.DirsMissing)
	fmt.Fprintf(f.writer, "  Errored:              %d\n", report.Stats.FilesErrored)
	fmt.Fprintf(f.writer, "  Revisions scanned:    %d\n", report.Stats.RevisionsScanned)
	fmt.Fprintf(f.writer, "\n")

	fmt.Fprintf(f.writer, "Newest commit with matching files: %s\n", orNone(report.NewestMatch))
	fmt.Fprintf(f.writer, "Newest commit with smallest differences for non-matching files: %s\n", orNone(report.NewestClosest))
	if report.NewestOverall != "" {
		fmt.Fprintf(f.writer, "%s is newer\n", report.NewestOverall)
	}

	fmt.Fprintf(f.writer, "\nStatus: %s\n", report.Status)
	return nil
}

func orNone(rev string) string {
	if rev == "" {
		return "None"
	}
	return rev
}

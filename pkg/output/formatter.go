package output

import (
	"github.com/romtools/romtrace/pkg/models"
)

// Formatter renders per-file and summary results of a match run
type Formatter interface {
	// Start is called once before the first result with the number of
	// files that will be processed
	Start(totalFiles int) error

	// Result is called for every classified archive entry, in completion
	// order. Called from the comparator's collection path only, never
	// concurrently.
	Result(res *models.FileResult) error

	// Complete finalizes output with the full report
	Complete(report *models.MatchReport) error
}

package models

import (
	"time"
)

// MatchReport represents the results of one full archive comparison run
type MatchReport struct {
	// Operation details
	OperationID string `json:"operation_id"`
	ArchiveRoot string `json:"archive_root"`
	RepoRoot    string `json:"repo_root"`
	Subfolder   string `json:"subfolder,omitempty"`
	DiffMode    bool   `json:"diff_mode"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Per-bucket results
	MissingDirs  []string     `json:"missing_dirs,omitempty"`
	MissingFiles []string     `json:"missing_files,omitempty"`
	Matched      []FileResult `json:"matched,omitempty"`
	Diverged     []FileResult `json:"diverged,omitempty"`
	Errors       []FileResult `json:"errors,omitempty"`

	// Statistics
	Stats Statistics `json:"stats"`

	// Ancestry reductions over the whole run. NewestMatch is the most
	// recent (by ancestry) revision among exact historical matches,
	// NewestClosest the same over closest-revision results, and
	// NewestOverall the more recent of the two.
	NewestMatch   string `json:"newest_match,omitempty"`
	NewestClosest string `json:"newest_closest,omitempty"`
	NewestOverall string `json:"newest_overall,omitempty"`

	// Overall status
	Status RunStatus `json:"status"`
}

// Statistics holds match run metrics
type Statistics struct {
	FilesScanned int `json:"files_scanned"`
	DirsScanned  int `json:"dirs_scanned"`

	FilesUnchanged int `json:"files_unchanged"`
	FilesMatched   int `json:"files_matched"`
	FilesDiverged  int `json:"files_diverged"`
	FilesMissing   int `json:"files_missing"`
	DirsMissing    int `json:"dirs_missing"`
	FilesErrored   int `json:"files_errored"`

	RevisionsScanned int `json:"revisions_scanned"`
}

// UnmatchedFiles returns the archive-relative paths of every file without
// an exact counterpart anywhere in history: missing files plus diverged
// files (with or without a closest revision). These are the copy-in and
// merge-script candidates.
func (r *MatchReport) UnmatchedFiles() []string {
	paths := make([]string, 0, len(r.MissingFiles)+len(r.Diverged))
	paths = append(paths, r.MissingFiles...)
	for _, d := range r.Diverged {
		paths = append(paths, d.RelativePath)
	}
	return paths
}

// RunStatus represents the overall result of a run
type RunStatus string

const (
	// StatusSuccess indicates the run completed; divergences may exist
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates the run completed but some files errored
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run aborted before completion
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was cancelled mid-walk; the
	// partial report is still valid
	StatusCancelled RunStatus = "cancelled"
)

// ExitCode returns the process exit code for the run status. Divergences
// are findings, not failures: a completed run always exits zero.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial:
		return 0
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

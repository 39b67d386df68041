package models

import (
	"time"
)

// MatchOperation represents one archive comparison run configuration
type MatchOperation struct {
	ID          string
	ArchivePath string
	RepoPath    string

	// DiffMode enables the diff-based closest-revision fallback for files
	// without an exact historical match. Off by default: it reads and
	// diffs every touching revision of every diverged file.
	DiffMode bool

	// CopyFiles copies missing and unmatched files into the tree after
	// the comparison completes
	CopyFiles bool

	// MergeScript, if non-empty, is the path of the merge-assist script
	// to emit after the run
	MergeScript string

	// ExportDir is the export directory the merge-assist script is
	// parameterized with
	ExportDir string

	ExcludePatterns []string
	MaxWorkers      int
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *MatchOperation) Validate() error {
	if op.ArchivePath == "" {
		return &ValidationError{Field: "ArchivePath", Message: "archive path is required"}
	}
	if op.RepoPath == "" {
		return &ValidationError{Field: "RepoPath", Message: "repository path is required"}
	}
	if op.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	if op.MergeScript == "" && op.ExportDir != "" {
		return &ValidationError{Field: "ExportDir", Message: "export dir requires a merge script path"}
	}
	return nil
}

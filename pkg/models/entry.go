package models

import (
	"time"
)

// ArchiveEntry represents one entry discovered while walking the archive
type ArchiveEntry struct {
	// RelativePath is the path relative to the archive root, slash-separated
	RelativePath string

	// AbsolutePath is the full path on the filesystem
	AbsolutePath string

	// Size in bytes (zero for directories)
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool

	// IsSymlink indicates the entry is a symbolic link (never followed)
	IsSymlink bool
}

// RepoPath returns the repository-relative path for this entry, given the
// subfolder offset between the repository root and the compared tree.
// The result is always slash-separated, as git expects.
func (e *ArchiveEntry) RepoPath(subfolder string) string {
	if subfolder == "" || subfolder == "." {
		return e.RelativePath
	}
	return subfolder + "/" + e.RelativePath
}

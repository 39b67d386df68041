package models

// MatchKind classifies the outcome of matching one archive file against
// the repository and its history
type MatchKind string

const (
	// MatchUnchanged means the archive file is byte-identical to the
	// checked-out repository copy
	MatchUnchanged MatchKind = "unchanged"
	// MatchHistorical means the content matches a non-HEAD revision exactly
	MatchHistorical MatchKind = "historical"
	// MatchClosest means no revision matched exactly; a closest revision
	// was selected by minimal diff size
	MatchClosest MatchKind = "closest"
	// MatchDiverged means no revision matched and no closest revision is
	// available (diff mode off, or content is not text)
	MatchDiverged MatchKind = "diverged"
	// MatchMissingFile means the path does not exist in the repository tree
	MatchMissingFile MatchKind = "missing-file"
	// MatchMissingDir means the directory does not exist in the repository tree
	MatchMissingDir MatchKind = "missing-dir"
	// MatchError means the archive file could not be processed
	MatchError MatchKind = "error"
)

// FileResult is the per-file outcome of a match run
type FileResult struct {
	// RelativePath is the archive-relative path
	RelativePath string `json:"path"`

	// Kind classifies the outcome
	Kind MatchKind `json:"kind"`

	// Revision is the matched or closest commit hash (hex), if any
	Revision string `json:"revision,omitempty"`

	// DistanceFromHead is the ordinal of the matched revision in the
	// newest-first per-path history (0 = most recent touching commit).
	// Only meaningful for MatchHistorical.
	DistanceFromHead int `json:"distance_from_head,omitempty"`

	// DiffLines is the unified diff size against the closest revision.
	// Only meaningful for MatchClosest.
	DiffLines int `json:"diff_lines,omitempty"`

	// RevisionsScanned is the number of historical blobs examined while
	// resolving this file (informational)
	RevisionsScanned int `json:"-"`

	// Err carries the failure for MatchError results
	Err error `json:"-"`

	// Error is the string form of Err for serialized reports
	Error string `json:"error,omitempty"`
}

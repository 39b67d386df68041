package gitrepo

import (
	"errors"
	"fmt"
)

// Sentinel errors for the repository adapter. All errors can be checked
// using errors.Is() for programmatic handling.

// ErrNotARepository is returned when no git repository root can be found
// at or above the given path.
var ErrNotARepository = errors.New("not a git repository")

// ErrPathNotInRevision is returned by ReadBlob when the path did not exist
// in the given revision's tree (added later, or deleted/moved). Callers
// must treat this as "skip, not found", never as a fatal condition.
var ErrPathNotInRevision = errors.New("path not present in revision")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

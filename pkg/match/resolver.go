// Package match implements the archive-to-history matching engine:
// per-file exact-match search through git history with a diff-size-based
// closest-revision fallback, and the whole-archive comparison that folds
// per-file results into a baseline-commit determination.
package match

import (
	"context"
	"errors"
	"os"

	"github.com/romtools/romtrace/pkg/gitrepo"
	"github.com/romtools/romtrace/pkg/hashing"
	"github.com/romtools/romtrace/pkg/logging"
	"github.com/romtools/romtrace/pkg/models"
	"github.com/romtools/romtrace/pkg/textdiff"
)

// Resolver matches one archive file against the repository and its
// per-path history.
//
// The "unchanged" check compares against the checked-out working tree
// copy, not the HEAD commit blob: a dirty worktree compares against what
// is on disk.
type Resolver struct {
	repo     *gitrepo.Repo
	logger   logging.Logger
	diffMode bool
}

// NewResolver creates a resolver. With diffMode enabled, files without an
// exact historical match get a closest-revision fallback based on unified
// diff size.
func NewResolver(repo *gitrepo.Repo, logger logging.Logger, diffMode bool) *Resolver {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Resolver{repo: repo, logger: logger, diffMode: diffMode}
}

// Resolve classifies one archive file whose same-path counterpart exists
// in the working tree. The returned error is non-nil only for fatal
// conditions (cancelled context, unexpected backend failures); per-file
// archive I/O problems come back as a MatchError result and the run
// continues.
func (r *Resolver) Resolve(ctx context.Context, entry models.ArchiveEntry, repoRel string) (models.FileResult, error) {
	result := models.FileResult{RelativePath: entry.RelativePath}

	archiveBytes, err := os.ReadFile(entry.AbsolutePath)
	if err != nil {
		r.logger.Warn(ctx, "skipping unreadable archive file", logging.Fields{
			"path":  entry.RelativePath,
			"error": err.Error(),
		})
		result.Kind = models.MatchError
		result.Err = err
		result.Error = err.Error()
		return result, nil
	}
	archiveDigest := hashing.DigestBytes(archiveBytes)

	headDigest, err := hashing.DigestFile(r.repo.WorktreePath(repoRel))
	if err != nil {
		r.logger.Warn(ctx, "skipping unreadable worktree file", logging.Fields{
			"path":  repoRel,
			"error": err.Error(),
		})
		result.Kind = models.MatchError
		result.Err = err
		result.Error = err.Error()
		return result, nil
	}

	// Cheapest path first: identical to the checked-out copy means no
	// history queries at all.
	if archiveDigest == headDigest {
		result.Kind = models.MatchUnchanged
		return result, nil
	}

	revisions, err := r.repo.RevisionsTouching(ctx, repoRel)
	if err != nil {
		return result, err
	}

	diffEnabled := r.diffMode
	var archiveLines []string
	if diffEnabled {
		archiveLines, err = textdiff.Lines(archiveBytes)
		if errors.Is(err, textdiff.ErrNotText) {
			r.logger.Info(ctx, "diff fallback disabled for non-text file", logging.Fields{
				"path": entry.RelativePath,
			})
			diffEnabled = false
		} else if err != nil {
			return result, err
		}
	}

	minDiffLines := -1
	var minDiffRev gitrepo.Revision

	for i, rev := range revisions {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		blob, err := r.repo.ReadBlob(rev, repoRel)
		if errors.Is(err, gitrepo.ErrPathNotInRevision) {
			// The file was added later, or deleted/moved at this point in
			// history. Keep scanning older revisions.
			result.RevisionsScanned++
			continue
		}
		if err != nil {
			// Unexpected backend errors are fatal rather than silently
			// absorbed.
			return result, err
		}
		result.RevisionsScanned++

		if hashing.DigestBytes(blob) == archiveDigest {
			// Newest-first scan order: the first hit is the most recent
			// revision with identical content.
			result.Kind = models.MatchHistorical
			result.Revision = rev.Hex()
			result.DistanceFromHead = i
			return result, nil
		}

		if !diffEnabled {
			continue
		}

		blobLines, err := textdiff.Lines(blob)
		if errors.Is(err, textdiff.ErrNotText) {
			r.logger.Info(ctx, "diff fallback disabled for non-text revision content", logging.Fields{
				"path":     entry.RelativePath,
				"revision": rev.Hex(),
			})
			diffEnabled = false
			continue
		}
		if err != nil {
			return result, err
		}

		diffLines, err := textdiff.UnifiedLineCount(blobLines, archiveLines)
		if err != nil {
			return result, err
		}
		// Ties keep the first (newest) minimum encountered.
		if minDiffLines < 0 || diffLines < minDiffLines {
			minDiffLines = diffLines
			minDiffRev = rev
		}
	}

	if minDiffLines >= 0 {
		result.Kind = models.MatchClosest
		result.Revision = minDiffRev.Hex()
		result.DiffLines = minDiffLines
		return result, nil
	}

	result.Kind = models.MatchDiverged
	return result, nil
}

// Package export materializes the follow-up artifacts of a comparison
// run: copying unmatched archive files into the working tree and
// emitting a merge-assist script for diverged files.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/romtools/romtrace/pkg/gitrepo"
	"github.com/romtools/romtrace/pkg/logging"
	"github.com/romtools/romtrace/pkg/models"
)

// Copier copies archive files into the repository working tree at their
// mapped paths
type Copier struct {
	repo      *gitrepo.Repo
	subfolder string
	logger    logging.Logger
}

// NewCopier creates a copier targeting the given repository subfolder
func NewCopier(repo *gitrepo.Repo, subfolder string, logger logging.Logger) *Copier {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Copier{repo: repo, subfolder: subfolder, logger: logger}
}

// CopyUnmatched copies every missing and diverged file of the report from
// the archive into the working tree, creating parent directories as
// needed. Existing files are overwritten: for diverged paths that is the
// point of the copy.
func (c *Copier) CopyUnmatched(ctx context.Context, report *models.MatchReport) (int, error) {
	copied := 0
	for _, rel := range report.UnmatchedFiles() {
		select {
		case <-ctx.Done():
			return copied, ctx.Err()
		default:
		}

		entry := models.ArchiveEntry{RelativePath: rel}
		src := filepath.Join(report.ArchiveRoot, filepath.FromSlash(rel))
		dst := c.repo.WorktreePath(entry.RepoPath(c.subfolder))

		if err := copyFile(src, dst); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", rel, err)
		}
		copied++

		c.logger.Debug(ctx, "copied archive file into tree", logging.Fields{
			"source": src,
			"dest":   dst,
		})
	}

	c.logger.Info(ctx, "copied unmatched files", logging.Fields{"count": copied})
	return copied, nil
}

// copyFile copies src to dst, preserving the source file mode
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

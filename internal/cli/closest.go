package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/gitrepo"
	"github.com/romtools/romtrace/pkg/match"
	"github.com/romtools/romtrace/pkg/models"
)

// NewClosestCommand creates the closest command
func NewClosestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "closest <archive-file> <repo-file>",
		Short: "Find the revision closest to one archive file",
		Long: `Search the history of a single repository file for the revision whose
content is closest to the given archive file. Reports an exact match
when one exists, otherwise the revision with the smallest unified diff.`,
		Args: cobra.ExactArgs(2),
		RunE: runClosest,
	}
}

func runClosest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	archiveFile, repoFile := args[0], args[1]

	archiveInfo, err := os.Stat(archiveFile)
	if err != nil || archiveInfo.IsDir() {
		return fmt.Errorf("file missing: %s", archiveFile)
	}
	if info, err := os.Stat(repoFile); err != nil || info.IsDir() {
		return fmt.Errorf("file missing: %s", repoFile)
	}

	repo, err := gitrepo.Open(filepath.Dir(repoFile))
	if err != nil {
		return err
	}
	fmt.Printf("Git repository root: %s\n\n", repo.Root())

	repoRel, err := repo.Subfolder(repoFile)
	if err != nil {
		return err
	}
	fmt.Printf("Checking file: %s\n\n", repoRel)

	absArchive, err := filepath.Abs(archiveFile)
	if err != nil {
		return err
	}
	entry := models.ArchiveEntry{
		RelativePath: repoRel,
		AbsolutePath: absArchive,
		Size:         archiveInfo.Size(),
	}

	resolver := match.NewResolver(repo, nil, true)
	result, err := resolver.Resolve(ctx, entry, repoRel)
	if err != nil {
		return err
	}

	switch result.Kind {
	case models.MatchUnchanged:
		fmt.Printf("File matches the current checkout: %s\n", repoRel)
	case models.MatchHistorical:
		fmt.Printf("Older file: %s -- matching commit: %s (%d changes from head)\n",
			repoRel, result.Revision, result.DistanceFromHead)
	case models.MatchClosest:
		fmt.Printf("Differing file without match: %s\n", repoRel)
		fmt.Printf("Closest commit: %s\n", result.Revision)
		fmt.Printf("Difference in lines: %d\n", result.DiffLines)
	case models.MatchError:
		return fmt.Errorf("failed to compare %s: %s", repoRel, result.Error)
	default:
		fmt.Printf("No comparable revision found for: %s\n", repoRel)
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/archive"
	"github.com/romtools/romtrace/pkg/export"
	"github.com/romtools/romtrace/pkg/gitrepo"
	"github.com/romtools/romtrace/pkg/match"
	"github.com/romtools/romtrace/pkg/output"
)

// MatchFlags holds match command flags
type MatchFlags struct {
	Diff        bool
	Progress    bool
	CopyFiles   bool
	MergeScript string
	ExportDir   string
	Parallel    int
	Exclude     []string
	Output      string
	Report      string
	ReportFmt   string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var matchFlags MatchFlags

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <archive> <repo-path>",
		Short: "Match archive files against repository history",
		Long: `Compare every file of an extracted archive against a git working tree
and its per-file history. Files identical to the checked-out copy are
unchanged; files matching an older revision report that revision; with
--diff, files matching nothing report the revision with the smallest
unified diff. The run also folds all matched revisions into the newest
baseline commit the archive could correspond to.`,
		Args: cobra.ExactArgs(2),
		RunE: runMatch,
	}

	cmd.Flags().BoolVar(&matchFlags.Diff, "diff", false, "find the closest revision for files without an exact match (expensive)")
	cmd.Flags().BoolVar(&matchFlags.CopyFiles, "copy-files", false, "copy missing and unmatched files into the tree after the run")
	cmd.Flags().StringVar(&matchFlags.MergeScript, "merge-script", "", "write a merge helper script for diverged files to this path")
	cmd.Flags().StringVar(&matchFlags.ExportDir, "export-dir", "", "export directory the merge script is parameterized with")
	cmd.Flags().IntVarP(&matchFlags.Parallel, "parallel", "p", 0, "number of parallel workers (default: 4)")
	cmd.Flags().StringSliceVar(&matchFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&matchFlags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().BoolVar(&matchFlags.Progress, "progress", false, "show a progress bar instead of per-file lines")
	cmd.Flags().StringVar(&matchFlags.Report, "report", "", "write the full report to file")
	cmd.Flags().StringVar(&matchFlags.ReportFmt, "report-format", "human", "report file format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&matchFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&matchFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&matchFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	archivePath, repoPath := args[0], args[1]

	if err := validateMatchArgs(archivePath, repoPath); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	operation, err := createMatchOperation(cfg, archivePath, repoPath)
	if err != nil {
		return fmt.Errorf("failed to create match operation: %w", err)
	}

	repo, err := gitrepo.Open(repoPath)
	if err != nil {
		return err
	}
	subfolder, err := repo.Subfolder(repoPath)
	if err != nil {
		return err
	}

	walker, err := archive.NewWalker(archivePath, cfg.Exclude)
	if err != nil {
		return err
	}

	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter(os.Stdout)
	default:
		if cfg.Output.Progress {
			formatter = output.NewProgressFormatter(os.Stdout, globalFlags.Verbose)
		} else {
			formatter = output.NewHumanFormatter(os.Stdout, globalFlags.Verbose)
		}
	}

	logger, err := createLogger(matchFlags.LogFile, matchFlags.LogFormat, matchFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	comparator := match.NewComparator(walker, repo, formatter, logger, operation, subfolder)

	report, err := comparator.Run(ctx)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if matchFlags.Report != "" {
		if err := output.WriteReport(report, matchFlags.Report, matchFlags.ReportFmt); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if operation.CopyFiles {
		copier := export.NewCopier(repo, subfolder, logger)
		if _, err := copier.CopyUnmatched(ctx, report); err != nil {
			return fmt.Errorf("failed to copy files: %w", err)
		}
	}

	if operation.MergeScript != "" {
		if err := export.WriteMergeScript(report, operation.MergeScript, operation.ExportDir); err != nil {
			return fmt.Errorf("failed to write merge script: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

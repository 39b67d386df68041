package match

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/romtools/romtrace/pkg/archive"
	"github.com/romtools/romtrace/pkg/gitrepo"
	"github.com/romtools/romtrace/pkg/logging"
	"github.com/romtools/romtrace/pkg/models"
	"github.com/romtools/romtrace/pkg/output"
)

// Comparator drives the walker and resolver over a whole archive and
// folds per-file results into a MatchReport.
type Comparator struct {
	walker    *archive.Walker
	repo      *gitrepo.Repo
	resolver  *Resolver
	formatter output.Formatter
	logger    logging.Logger
	operation *models.MatchOperation
	subfolder string

	results   []models.FileResult
	resultsMu sync.Mutex
}

// NewComparator creates a comparator for one run
func NewComparator(
	walker *archive.Walker,
	repo *gitrepo.Repo,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.MatchOperation,
	subfolder string,
) *Comparator {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Comparator{
		walker:    walker,
		repo:      repo,
		resolver:  NewResolver(repo, logger, operation.DiffMode),
		formatter: formatter,
		logger:    logger,
		operation: operation,
		subfolder: subfolder,
	}
}

// Run walks the archive, resolves every file against history and builds
// the report. A cancelled context yields a valid partial report with
// StatusCancelled; fatal backend errors abort with a nil report.
func (c *Comparator) Run(ctx context.Context) (*models.MatchReport, error) {
	startTime := time.Now()
	report := &models.MatchReport{
		OperationID: c.operation.ID,
		ArchiveRoot: c.walker.Root(),
		RepoRoot:    c.repo.Root(),
		Subfolder:   c.subfolder,
		DiffMode:    c.operation.DiffMode,
		StartTime:   startTime,
		Status:      models.StatusSuccess,
	}

	c.logger.Info(ctx, "starting archive comparison", logging.Fields{
		"operation_id": c.operation.ID,
		"archive":      report.ArchiveRoot,
		"repo_root":    report.RepoRoot,
		"subfolder":    c.subfolder,
		"diff_mode":    c.operation.DiffMode,
		"max_workers":  c.operation.MaxWorkers,
	})

	entries, err := c.walker.Walk(ctx)
	if err != nil {
		if ctx.Err() != nil {
			report.Status = models.StatusCancelled
			c.finalize(ctx, report)
			return report, nil
		}
		return nil, err
	}

	// Classify entries against the working tree first. Missing paths are
	// bucketed without ever reaching the resolver; only files with a
	// same-path counterpart queue for history search.
	var tasks []models.ArchiveEntry
	var missing []models.FileResult
	for _, entry := range entries {
		if entry.IsDir {
			report.Stats.DirsScanned++
		} else {
			report.Stats.FilesScanned++
		}

		wtPath := c.repo.WorktreePath(entry.RepoPath(c.subfolder))
		info, statErr := os.Stat(wtPath)

		if entry.IsDir {
			if statErr != nil || !info.IsDir() {
				missing = append(missing, models.FileResult{
					RelativePath: entry.RelativePath,
					Kind:         models.MatchMissingDir,
				})
			}
			continue
		}
		if statErr != nil || info.IsDir() {
			missing = append(missing, models.FileResult{
				RelativePath: entry.RelativePath,
				Kind:         models.MatchMissingFile,
			})
			continue
		}
		tasks = append(tasks, entry)
	}

	if c.formatter != nil {
		c.formatter.Start(len(tasks))
	}
	for _, res := range missing {
		c.addResult(res)
	}

	runErr := c.runWorkers(ctx, tasks)
	if runErr != nil && ctx.Err() == nil {
		return nil, runErr
	}
	if ctx.Err() != nil {
		report.Status = models.StatusCancelled
	}

	c.buildReport(report)

	if err := c.reduceAncestry(report); err != nil {
		return nil, err
	}

	c.finalize(ctx, report)

	if c.formatter != nil {
		c.formatter.Complete(report)
	}
	return report, nil
}

// runWorkers resolves the queued files with a bounded worker pool. The
// first fatal error cancels the remaining work.
func (c *Comparator) runWorkers(ctx context.Context, tasks []models.ArchiveEntry) error {
	workerCount := c.operation.MaxWorkers
	if workerCount < 1 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskQueue := make(chan models.ArchiveEntry, len(tasks))
	for _, t := range tasks {
		taskQueue <- t
	}
	close(taskQueue)

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range taskQueue {
				select {
				case <-ctx.Done():
					return
				default:
				}

				res, err := c.resolver.Resolve(ctx, entry, entry.RepoPath(c.subfolder))
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					cancel()
					return
				}
				c.addResult(res)
			}
		}()
	}

	wg.Wait()

	errMu.Lock()
	defer errMu.Unlock()
	return firstErr
}

// addResult collects one result and forwards it to the formatter
func (c *Comparator) addResult(res models.FileResult) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()
	c.results = append(c.results, res)
	if c.formatter != nil {
		c.formatter.Result(&res)
	}
}

// buildReport buckets the collected results, path-sorted for determinism
func (c *Comparator) buildReport(report *models.MatchReport) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()

	sort.Slice(c.results, func(i, j int) bool {
		return c.results[i].RelativePath < c.results[j].RelativePath
	})

	for _, res := range c.results {
		report.Stats.RevisionsScanned += res.RevisionsScanned
		switch res.Kind {
		case models.MatchUnchanged:
			report.Stats.FilesUnchanged++
		case models.MatchHistorical:
			report.Stats.FilesMatched++
			report.Matched = append(report.Matched, res)
		case models.MatchClosest, models.MatchDiverged:
			report.Stats.FilesDiverged++
			report.Diverged = append(report.Diverged, res)
		case models.MatchMissingFile:
			report.Stats.FilesMissing++
			report.MissingFiles = append(report.MissingFiles, res.RelativePath)
		case models.MatchMissingDir:
			report.Stats.DirsMissing++
			report.MissingDirs = append(report.MissingDirs, res.RelativePath)
		case models.MatchError:
			report.Stats.FilesErrored++
			report.Errors = append(report.Errors, res)
		}
	}
}

// reduceAncestry computes the newest matching and newest closest
// revisions over the whole run, then the newer of the two.
//
// The fold walks a partial order: candidate replaces incumbent only when
// the incumbent is a proper or equal ancestor of the candidate. Genuinely
// incomparable revisions (divergent branches) keep the incumbent, so the
// result is some maximal element under ancestry, deterministic for the
// path-sorted result order.
func (c *Comparator) reduceAncestry(report *models.MatchReport) error {
	var newestMatch, newestClosest gitrepo.Revision

	for _, res := range report.Matched {
		rev, err := c.foldNewer(newestMatch, res.Revision)
		if err != nil {
			return err
		}
		newestMatch = rev
	}
	for _, res := range report.Diverged {
		if res.Revision == "" {
			continue
		}
		rev, err := c.foldNewer(newestClosest, res.Revision)
		if err != nil {
			return err
		}
		newestClosest = rev
	}

	if !newestMatch.IsZero() {
		report.NewestMatch = newestMatch.Hex()
	}
	if !newestClosest.IsZero() {
		report.NewestClosest = newestClosest.Hex()
	}

	switch {
	case newestMatch.IsZero():
		report.NewestOverall = report.NewestClosest
	case newestClosest.IsZero():
		report.NewestOverall = report.NewestMatch
	default:
		ok, err := c.repo.IsAncestor(newestClosest, newestMatch)
		if err != nil {
			return err
		}
		if ok {
			report.NewestOverall = report.NewestMatch
		} else {
			report.NewestOverall = report.NewestClosest
		}
	}
	return nil
}

// foldNewer returns the newer of incumbent and the candidate hex
// revision; an unset incumbent always loses
func (c *Comparator) foldNewer(incumbent gitrepo.Revision, candidateHex string) (gitrepo.Revision, error) {
	candidate := gitrepo.ParseRevision(candidateHex)
	if incumbent.IsZero() {
		return candidate, nil
	}
	ok, err := c.repo.IsAncestor(incumbent, candidate)
	if err != nil {
		return incumbent, err
	}
	if ok {
		return candidate, nil
	}
	return incumbent, nil
}

// finalize stamps timing and status
func (c *Comparator) finalize(ctx context.Context, report *models.MatchReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	if report.Status == models.StatusSuccess && report.Stats.FilesErrored > 0 {
		report.Status = models.StatusPartial
	}

	c.logger.Info(ctx, "archive comparison completed", logging.Fields{
		"duration":       report.Duration.String(),
		"status":         string(report.Status),
		"unchanged":      report.Stats.FilesUnchanged,
		"matched":        report.Stats.FilesMatched,
		"diverged":       report.Stats.FilesDiverged,
		"missing_files":  report.Stats.FilesMissing,
		"errored":        report.Stats.FilesErrored,
		"newest_match":   report.NewestMatch,
		"newest_closest": report.NewestClosest,
	})
}

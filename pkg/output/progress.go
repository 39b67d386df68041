package output

import (
	"io"
	"os"
	"sort"

	"github.com/cheggaaa/pb/v3"

	"github.com/romtools/romtrace/pkg/models"
)

// progressTemplate shows processed/total counters and an estimated time
// to completion derived from pb's moving throughput average. The estimate
// is informational only.
const progressTemplate = `{{ counters . }} {{ bar . "[" "=" ">" "_" "]" }} {{ percent . }} {{ rtime . "ETA %s" }}`

// ProgressFormatter renders a progress bar during the run and replays the
// per-file findings once the bar is finished, so bar redraws and result
// lines never interleave.
type ProgressFormatter struct {
	writer  io.Writer
	bar     *pb.ProgressBar
	verbose bool
}

// NewProgressFormatter creates a progress-bar formatter. The bar is drawn
// on stderr; findings and the summary go to writer.
func NewProgressFormatter(writer io.Writer, verbose bool) *ProgressFormatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ProgressFormatter{writer: writer, verbose: verbose}
}

// Start initializes the bar with the total file count
func (f *ProgressFormatter) Start(totalFiles int) error {
	f.bar = pb.New(totalFiles)
	f.bar.SetTemplateString(progressTemplate)
	f.bar.SetWriter(os.Stderr)
	f.bar.Start()
	return nil
}

// Result advances the bar; messages are deferred to Complete
func (f *ProgressFormatter) Result(res *models.FileResult) error {
	if f.bar != nil {
		f.bar.Increment()
	}
	return nil
}

// Complete stops the bar and replays all findings in path order, followed
// by the summary
func (f *ProgressFormatter) Complete(report *models.MatchReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}

	human := NewHumanFormatter(f.writer, f.verbose)

	var results []models.FileResult
	for _, d := range report.MissingDirs {
		results = append(results, models.FileResult{RelativePath: d, Kind: models.MatchMissingDir})
	}
	for _, p := range report.MissingFiles {
		results = append(results, models.FileResult{RelativePath: p, Kind: models.MatchMissingFile})
	}
	results = append(results, report.Matched...)
	results = append(results, report.Diverged...)
	results = append(results, report.Errors...)

	sort.Slice(results, func(i, j int) bool {
		return results[i].RelativePath < results[j].RelativePath
	})

	for i := range results {
		if err := human.Result(&results[i]); err != nil {
			return err
		}
	}
	return human.Complete(report)
}

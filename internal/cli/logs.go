package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/logcmp"
)

// NewLogsCommand creates the logs command
func NewLogsCommand() *cobra.Command {
	var contextWindow int
	var preprocess string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "logs <file1> <file2>",
		Short: "Compare two log captures with flexible line matching",
		Long: `Compare two log files while tolerating reordering: a line counts as
matched when the other capture carries it anywhere within the context
window around the same position. Lines unique to the first file print
in red, lines unique to the second in green.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines1, err := logcmp.ReadLines(args[0])
			if err != nil {
				return err
			}
			lines2, err := logcmp.ReadLines(args[1])
			if err != nil {
				return err
			}

			if preprocess == "dmesg" {
				lines1 = logcmp.PreprocessDmesg(lines1)
				lines2 = logcmp.PreprocessDmesg(lines2)
			}

			diff := logcmp.Compare(lines1, lines2, contextWindow)
			return logcmp.Render(os.Stdout, diff, !noColor)
		},
	}

	cmd.Flags().IntVarP(&contextWindow, "context", "c", logcmp.DefaultContext, "matching window in lines")
	cmd.Flags().StringVar(&preprocess, "preprocess", "", "preprocessing step: dmesg (strip timestamp column)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

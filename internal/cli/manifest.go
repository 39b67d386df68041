package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/manifest"
)

// NewManifestCommand creates the manifest command
func NewManifestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <manifest.xml> <stock-tree>",
		Short: "Compare vendor interface HAL records against a stock tree",
		Long: `Check every HAL record of the given manifest against the manifests of
the same type found anywhere under the stock tree. HALs are matched by
name and compared structurally, ignoring formatting differences.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := manifest.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("My manifest type: %s, version: %s, target-level: %s\n\n",
				custom.Type, custom.Version, custom.TargetLevel)

			stock, warnings, err := manifest.LoadStockManifests(args[1], custom.Type)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", w)
			}

			results := manifest.Compare(custom, stock)

			matched := 0
			for _, r := range results {
				switch r.Status {
				case manifest.HALNotFound:
					fmt.Printf("HAL: %s - Not found on stock\n", r.Name)
				case manifest.HALMismatch:
					fmt.Printf("HAL: %s - Mismatch\n", r.Name)
					fmt.Printf("Found in: %s\n\n", r.StockFile)
				default:
					matched++
				}
			}

			fmt.Println()
			fmt.Printf("Total checked records: %d\n", len(results))
			fmt.Printf("Matching records: %d\n", matched)
			fmt.Printf("Mismatched records: %d\n", len(results)-matched)
			return nil
		},
	}
}

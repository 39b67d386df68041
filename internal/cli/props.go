package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/props"
)

// NewPropsCommand creates the props command
func NewPropsCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "props <prop-file> <stock-tree>",
		Short: "Compare a property file against a stock tree",
		Long: `Compare every property of a custom property file against the merged
properties of all *.prop files under a stock tree. With --output, write
a merged file where differing properties take the stock value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			propFile, stockTree := args[0], args[1]

			lines, err := props.ParseFile(propFile)
			if err != nil {
				return err
			}

			stockFiles, err := props.FindPropFiles(stockTree)
			if err != nil {
				return err
			}
			stock, warnings := props.LoadStockProperties(stockFiles)
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), w)
			}

			diffs := props.Compare(props.Properties(lines), stock)
			if len(diffs) == 0 {
				fmt.Println("No differences found between custom and stock properties.")
			} else {
				fmt.Println("Property Differences Found:")
				for _, d := range diffs {
					if d.MissingInStock {
						fmt.Printf("- %s: Not found in stock ROM (Custom value: %s)\n", d.Name, d.Custom)
					} else {
						fmt.Printf("- %s: Custom=%s | Stock=%s\n", d.Name, d.Custom, d.Stock)
					}
				}
			}

			if outputFile != "" {
				if err := props.WriteMerged(outputFile, lines, diffs); err != nil {
					return err
				}
				fmt.Printf("Output file generated: %s\n", outputFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "write a merged property file to this path")

	return cmd
}

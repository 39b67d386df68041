package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/dupes"
)

// NewDupesCommand creates the dupes command
func NewDupesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dupes <dir1> <dir2>",
		Short: "Find byte-identical files between two trees",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			res, err := dupes.Compare(ctx, args[0], args[1], nil)
			if err != nil {
				return err
			}

			fmt.Printf("Found %d different file(s)\n\n", len(res.Different))
			if len(res.Identical) == 0 {
				fmt.Println("No identical files found.")
				return nil
			}

			fmt.Printf("Found %d identical file(s):\n\n", len(res.Identical))
			for _, f := range res.Identical {
				fmt.Println(f)
			}
			return nil
		},
	}
}

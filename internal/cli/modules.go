package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/kmod"
)

// NewModulesCommand creates the modules command group
func NewModulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Compare and validate kernel module directories",
	}

	cmd.AddCommand(newModulesCompareCommand())
	cmd.AddCommand(newModulesCheckCommand())

	return cmd
}

func newModulesCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <stock-dir> <custom-dir>",
		Short: "Compare the .ko files of two module directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := kmod.CompareDirs(args[0], args[1])
			if err != nil {
				return err
			}

			for _, p := range res.Common {
				fmt.Printf("Module sizes: %s -- %d vs %d\n", p.Name, p.StockSize, p.CustomSize)
			}
			for _, m := range res.Missing {
				fmt.Printf("Custom ROM is missing: %s\n", m)
			}
			for _, m := range res.Extra {
				fmt.Printf("Custom ROM has extra module: %s\n", m)
			}
			return nil
		},
	}
}

func newModulesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <modules-dir>",
		Short: "Check that every module's dependencies are present",
		Long: `Query modinfo for the dependencies of every .ko file in the directory
and report modules whose dependencies have no .ko file there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			reports, err := kmod.NewValidator(nil).Validate(ctx, args[0])
			if err != nil {
				return err
			}

			var invalid []kmod.ModuleDeps
			for _, r := range reports {
				fmt.Printf("%s: %s\n", r.Name, strings.Join(r.Depends, " "))
				if len(r.Missing) > 0 {
					invalid = append(invalid, r)
				}
			}

			if len(invalid) == 0 {
				fmt.Println("All modules are valid.")
				return nil
			}

			fmt.Println("Some modules are invalid:")
			for _, r := range invalid {
				missing := make([]string, len(r.Missing))
				for i, m := range r.Missing {
					missing[i] = m + ".ko"
				}
				fmt.Printf("  - %s.ko is missing dependencies: %s\n", r.Name, strings.Join(missing, " "))
			}
			return nil
		},
	}
}

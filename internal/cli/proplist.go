package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/pkg/proplist"
)

// NewPropListCommand creates the proplist command group
func NewPropListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proplist",
		Short: "Work with proprietary-files.txt blob lists",
	}

	cmd.AddCommand(newPropListCheckCommand())
	cmd.AddCommand(newPropListDupesCommand())
	cmd.AddCommand(newPropListAbsentCommand())
	cmd.AddCommand(newPropListMissedCommand())

	return cmd
}

// newPropListCheckCommand reports tree files no blob list mentions
func newPropListCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <tree> <device-folder>...",
		Short: "Find tree files missing from the blob lists",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := proplist.TreeFiles(args[0])
			if err != nil {
				return err
			}
			entries, err := proplist.Entries(args[1:])
			if err != nil {
				return err
			}

			missing := proplist.MissingFromLists(tree, entries)
			if len(missing) == 0 {
				fmt.Println("All files are present in the text files.")
				return nil
			}

			fmt.Println("Missing files:")
			fmt.Println()
			for _, f := range missing {
				full := filepath.Join(args[0], filepath.FromSlash(f))
				if info := proplist.FileInfo(full); info != "" {
					fmt.Println(f, info)
				} else {
					fmt.Println(f)
				}
			}
			fmt.Println()
			fmt.Println("List of missing files again:")
			fmt.Println()
			fmt.Println(strings.Join(missing, "\n"))
			return nil
		},
	}
}

// newPropListDupesCommand reports entries appearing more than once
func newPropListDupesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dupes <device-folder>...",
		Short: "Find duplicate entries across blob lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dupes, err := proplist.Duplicates(args)
			if err != nil {
				return err
			}
			for _, d := range dupes {
				fmt.Println("Duplicate:", d)
			}
			return nil
		},
	}
}

// newPropListAbsentCommand reports list entries the tree does not carry
func newPropListAbsentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "absent <tree> <device-folder>...",
		Short: "Find blob list entries absent from the tree",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := proplist.TreeFiles(args[0])
			if err != nil {
				return err
			}

			for _, folder := range args[1:] {
				fmt.Printf("Opening: %s\n", folder)
				absent, err := proplist.AbsentFromTree(folder, tree)
				if err != nil {
					return err
				}
				for _, line := range absent {
					fmt.Println("Missing in the system:", line)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// newPropListMissedCommand reports old-list entries the new lists dropped
// even though the tree still has them
func newPropListMissedCommand() *cobra.Command {
	var root string
	var newLists, oldLists []string

	cmd := &cobra.Command{
		Use:   "missed",
		Short: "Find dropped entries that are still available in the tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := proplist.TreeFiles(root)
			if err != nil {
				return err
			}
			newEntries, err := proplist.Entries(newLists)
			if err != nil {
				return err
			}
			oldEntries, err := proplist.Entries(oldLists)
			if err != nil {
				return err
			}

			missed := proplist.MissedButAvailable(tree, newEntries, oldEntries)
			if len(missed) == 0 {
				fmt.Println("All files are present in the text files.")
				return nil
			}
			fmt.Println("Missing files:")
			fmt.Println()
			for _, f := range missed {
				fmt.Println(f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "folder containing the extracted tree (required)")
	cmd.Flags().StringSliceVar(&newLists, "new", nil, "device folders with the current blob lists (required)")
	cmd.Flags().StringSliceVar(&oldLists, "old", nil, "device folders with the previous blob lists (required)")
	cmd.MarkFlagRequired("root")
	cmd.MarkFlagRequired("new")
	cmd.MarkFlagRequired("old")

	return cmd
}

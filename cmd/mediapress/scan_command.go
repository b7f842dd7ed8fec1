package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mediapress/internal/config"
	"mediapress/internal/report"
	"mediapress/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Inventory a media tree without touching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			tree, err := scan.Walk(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, report.RenderScan(tree))

			collisions := tree.Collisions()
			if len(collisions) == 0 {
				return nil
			}
			keys := make([]string, 0, len(collisions))
			for key := range collisions {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			fmt.Fprintf(out, "\n%d output name collisions; a run would abort:\n", len(keys))
			for _, key := range keys {
				fmt.Fprintf(out, "  %s <- %s\n", key, strings.Join(collisions[key], ", "))
			}
			return nil
		},
	}
	return cmd
}

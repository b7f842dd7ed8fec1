package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediapress/internal/deps"
)

func newDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "deps",
		Short:       "Check availability of external tools",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, status := range deps.CheckBinaries(deps.Requirements()) {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				fmt.Fprintf(out, "%-10s %-18s %s\n", status.Name, state, status.Description)
				if status.Detail != "" {
					fmt.Fprintf(out, "           %s\n", status.Detail)
				}
			}
			if !deps.VideoToolsAvailable() {
				fmt.Fprintln(out, "\nVideo recompression disabled; videos will be copied verbatim.")
			}
			return nil
		},
	}
}

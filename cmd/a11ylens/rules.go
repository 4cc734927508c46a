package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the inspection rules and the codes they report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, r := range inspect.Rules() {
			fmt.Fprintf(tw, "%s\n", r.Name)
			for _, c := range finding.Codes() {
				if c.Rule() == r.Name {
					fmt.Fprintf(tw, "  %s\t%s\n", c.ID(), c.Title())
				}
			}
		}
		return tw.Flush()
	},
}

package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := newTable(cmd.OutOrStdout(), "Family", "Name", "Summary")
			for _, e := range a.registry.Entries() {
				tbl.Append([]string{e.Family, e.Name, e.Summary})
			}
			tbl.Render()

			return nil
		},
	}
}

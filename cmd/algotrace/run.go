package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// ErrUnknownFormat indicates an --output value other than table or yaml.
var ErrUnknownFormat = errors.New("algotrace: unknown output format")

func newRunCmd(a *app) *cobra.Command {
	var sets []string
	var format string
	var plot bool

	cmd := &cobra.Command{
		Use:   "run <algorithm>",
		Short: "Generate a trace and print every step",
		Example: `  algotrace run n-queens --set n=5 --set all=true
  algotrace run floyd-warshall --set edges="A->B:3,B->C:-1" --set directed=true
  algotrace run dijkstra --set start=B --set max_distance=6
  algotrace run dtw --set a=1,3,4,9 --set b=1,2,3,4,9 --plot
  algotrace run heap -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "yaml" {
				return errors.Wrapf(ErrUnknownFormat, "%q", format)
			}
			params, err := a.params(args[0], sets)
			if err != nil {
				return err
			}
			tr, err := a.registry.Generate(args[0], params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "yaml" {
				return writeYAML(out, tr)
			}
			printSteps(out, tr)
			printSnapshot(out, tr.Last().Snapshot)
			if plot {
				printPlot(out, tr.Last().Snapshot)
			}

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "algorithm parameter as key=value, repeatable")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table or yaml")
	cmd.Flags().BoolVar(&plot, "plot", false, "chart the input sequences of dtw and array scans")

	return cmd
}

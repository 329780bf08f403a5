package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/algotrace/internal/config"
	"github.com/katalvlaran/algotrace/topo"
)

func newTopoCmd(a *app) *cobra.Command {
	var file string
	var watch bool

	cmd := &cobra.Command{
		Use:   "topo",
		Short: "Topologically sort a dependency file, optionally re-sorting on every save",
		Long: `topo reads "u->v" pairs (one per line, or separated by ';' or ',') or a JSON
list of pairs from --file and prints the Kahn trace. With --watch the file is
re-read and re-sorted on every write until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sortFile := func() error {
				data, err := os.ReadFile(file)
				if err != nil {
					return errors.Wrapf(err, "read %s", file)
				}
				params, err := a.params(topo.Algorithm, nil)
				if err != nil {
					return err
				}
				params["edges"] = string(data)
				tr, err := a.registry.Generate(topo.Algorithm, params)
				if err != nil {
					return err
				}
				printSteps(out, tr)
				fmt.Fprintln(out, tr.Last().Description)

				return nil
			}

			if err := sortFile(); err != nil {
				if !watch {
					return err
				}
				a.logger.Warn("initial sort failed", "file", file, "error", err)
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			stopWatch, err := config.WatchFile(file,
				func() {
					if err := sortFile(); err != nil {
						a.logger.Warn("re-sort failed", "file", file, "error", err)
					}
				},
				func(err error) { a.logger.Error("watch", "file", file, "error", err) },
			)
			if err != nil {
				return err
			}
			defer stopWatch()
			a.logger.Info("watching", "file", file)
			<-ctx.Done()

			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "dependency list to sort")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-sort whenever the file changes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/algotrace/playback"
)

func newPlayCmd(a *app) *cobra.Command {
	var sets []string
	var speed time.Duration

	cmd := &cobra.Command{
		Use:   "play <algorithm>",
		Short: "Generate a trace and auto-advance through it on a timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("speed") {
				speed = a.cfg.Speed
			}
			params, err := a.params(args[0], sets)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			done := make(chan struct{})
			var (
				mu      sync.Mutex
				printed = -1
				once    sync.Once
			)
			c := playback.New(
				playback.WithLogger(a.logger),
				playback.WithMetrics(a.metrics),
				playback.WithDeriver(playback.NewVisited()),
				playback.WithObserver(func(v playback.View) {
					mu.Lock()
					if v.HasStep && v.Index != printed {
						printed = v.Index
						fmt.Fprintf(out, "[%d/%d] %-12s %s\n", v.Index+1, v.Len, v.Step.Phase, v.Step.Description)
					}
					mu.Unlock()
					if v.State == playback.StateComplete {
						once.Do(func() { close(done) })
					}
				}),
			)
			defer c.Close()
			if err := c.SetSpeed(speed); err != nil {
				return err
			}
			if err := c.Generate(a.registry.Generator(args[0], params)); err != nil {
				return err
			}
			c.Play()

			select {
			case <-done:
			case <-ctx.Done():
				c.Pause()
				fmt.Fprintln(out, "interrupted")
			}
			v := c.Snapshot()
			printSnapshot(out, v.Step.Snapshot)
			ids, _ := v.Derived[0].([]string)
			fmt.Fprintf(out, "%s: %d of %d steps, %d ids highlighted\n", v.State, v.Index+1, v.Len, len(ids))

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "algorithm parameter as key=value, repeatable")
	cmd.Flags().DurationVar(&speed, "speed", 0, "autoplay period, e.g. 300ms (default from config)")

	return cmd
}

package main

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/katalvlaran/algotrace/dtw"
	"github.com/katalvlaran/algotrace/scan"
)

const plotHeight = 8

// printPlot charts the sequences behind a snapshot. Snapshots without one
// print nothing.
func printPlot(w io.Writer, snap any) {
	switch s := snap.(type) {
	case dtw.Snapshot:
		plotSeries(w, "a", s.Table.A)
		plotSeries(w, "b", s.Table.B)
	case scan.Snapshot:
		plotSeries(w, "values", s.Array.Values)
	}
}

// plotSeries needs at least two points.
func plotSeries(w io.Writer, name string, values []int) {
	if len(values) < 2 {
		return
	}
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	fmt.Fprintf(w, "%s:\n%s\n", name, asciigraph.Plot(data, asciigraph.Height(plotHeight)))
}

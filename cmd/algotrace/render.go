package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/algotrace/apsp"
	"github.com/katalvlaran/algotrace/backtrack"
	"github.com/katalvlaran/algotrace/bst"
	"github.com/katalvlaran/algotrace/divide"
	"github.com/katalvlaran/algotrace/dtw"
	"github.com/katalvlaran/algotrace/flow"
	"github.com/katalvlaran/algotrace/mst"
	"github.com/katalvlaran/algotrace/scan"
	"github.com/katalvlaran/algotrace/topo"
	"github.com/katalvlaran/algotrace/trace"
	"github.com/katalvlaran/algotrace/traverse"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(header)
	tbl.SetAutoWrapText(false)
	tbl.SetAutoFormatHeaders(false)

	return tbl
}

// printSteps renders one row per step.
func printSteps(w io.Writer, tr trace.Trace[any]) {
	tbl := newTable(w, "#", "Phase", "Description", "Highlight")
	for _, s := range tr.Steps() {
		tbl.Append([]string{strconv.Itoa(s.Index), s.Phase.String(), s.Description, strings.Join(s.Highlight, " ")})
	}
	tbl.Render()
}

// printSnapshot renders the parts of a snapshot a terminal can show.
// Unknown snapshot types print nothing.
func printSnapshot(w io.Writer, snap any) {
	switch s := snap.(type) {
	case apsp.Snapshot:
		printMatrix(w, s.Matrix)
	case mst.Snapshot:
		fmt.Fprintf(w, "Selected: %s (total %d)\n", strings.Join(s.Selected, ", "), s.Total)
	case bst.Snapshot:
		fmt.Fprintf(w, "Tree: %s\n", s.Tree)
	case divide.Snapshot:
		fmt.Fprintf(w, "Recursion: %d calls, depth %d\n", len(s.Tree.Nodes), s.Tree.Depth())
	case topo.Snapshot:
		fmt.Fprintf(w, "Order: %s\n", strings.Join(s.Order, " "))
	case backtrack.QueensSnapshot:
		fmt.Fprintln(w, s.Board)
	case backtrack.MazeSnapshot:
		fmt.Fprint(w, renderMaze(s.Maze))
	case scan.Snapshot:
		printArray(w, s)
	case traverse.Snapshot:
		printTraversal(w, s)
	case flow.Snapshot:
		printFlow(w, s)
	case dtw.Snapshot:
		printCost(w, s.Table)
	}
}

func printMatrix(w io.Writer, m *apsp.Matrix) {
	if m == nil {
		return
	}
	tbl := newTable(w, append([]string{""}, m.IDs...)...)
	for i, row := range m.Dist {
		cells := []string{m.IDs[i]}
		for _, d := range row {
			cells = append(cells, apsp.FormatDistance(d))
		}
		tbl.Append(cells)
	}
	tbl.Render()
}

func printTraversal(w io.Writer, s traverse.Snapshot) {
	if s.Graph == nil {
		return
	}
	tbl := newTable(w, "Node", "Dist", "Parent")
	for i, n := range s.Graph.Nodes {
		tbl.Append([]string{n.ID, traverse.FormatDistance(s.Dist[i]), s.Parent[i]})
	}
	tbl.Render()
	fmt.Fprintf(w, "Order: %s\n", strings.Join(s.Order, " "))
}

func printFlow(w io.Writer, s flow.Snapshot) {
	if s.Graph == nil {
		return
	}
	tbl := newTable(w, "Edge", "Flow", "Capacity")
	for i, e := range s.Graph.Edges {
		tbl.Append([]string{e.ID, strconv.FormatInt(s.Flow[i], 10), strconv.FormatInt(e.Weight, 10)})
	}
	tbl.Render()
	if s.Level != nil {
		var levels []string
		for i, n := range s.Graph.Nodes {
			if s.Level[i] >= 0 {
				levels = append(levels, fmt.Sprintf("%s=%d", n.ID, s.Level[i]))
			}
		}
		fmt.Fprintf(w, "Levels: %s\n", strings.Join(levels, " "))
	}
	fmt.Fprintf(w, "Total: %d\n", s.Total)
}

// printCost renders D with a on the rows and b on the columns.
func printCost(w io.Writer, t dtw.Table) {
	header := []string{"", "-"}
	for _, v := range t.B {
		header = append(header, strconv.Itoa(v))
	}
	tbl := newTable(w, header...)
	for i, row := range t.Cost {
		label := "-"
		if i > 0 {
			label = strconv.Itoa(t.A[i-1])
		}
		cells := []string{label}
		for _, c := range row {
			cells = append(cells, dtw.FormatCost(c))
		}
		tbl.Append(cells)
	}
	tbl.Render()
}

func printArray(w io.Writer, s scan.Snapshot) {
	header := make([]string, len(s.Array.Values))
	values := make([]string, len(s.Array.Values))
	for i, v := range s.Array.Values {
		header[i] = strconv.Itoa(i)
		values[i] = strconv.Itoa(v)
	}
	tbl := newTable(w, header...)
	tbl.Append(values)
	tbl.Render()
	for b, chain := range s.Buckets {
		fmt.Fprintf(w, "%s: %v\n", scan.BucketKey(b), chain)
	}
	if len(s.Output) > 0 {
		fmt.Fprintf(w, "Output: %v\n", s.Output)
	}
}

var mazeGlyphs = map[backtrack.CellStatus]byte{
	backtrack.CellOpen:     '.',
	backtrack.CellWall:     '#',
	backtrack.CellPath:     '*',
	backtrack.CellExplored: '-',
	backtrack.CellDeadEnd:  'x',
}

func renderMaze(m backtrack.Maze) string {
	var b strings.Builder
	for r, row := range m.Cells {
		for c, cell := range row {
			switch (backtrack.Point{Row: r, Col: c}) {
			case m.Start:
				b.WriteByte('S')
			case m.Goal:
				b.WriteByte('G')
			default:
				b.WriteByte(mazeGlyphs[cell])
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

type stepDoc struct {
	Index       int         `yaml:"index"`
	Phase       trace.Phase `yaml:"phase"`
	Description string      `yaml:"description"`
	Highlight   []string    `yaml:"highlight,omitempty,flow"`
}

type traceDoc struct {
	Algorithm string    `yaml:"algorithm"`
	Steps     []stepDoc `yaml:"steps"`
}

// writeYAML emits the trace without snapshots.
func writeYAML(w io.Writer, tr trace.Trace[any]) error {
	doc := traceDoc{Algorithm: tr.Algorithm(), Steps: make([]stepDoc, 0, tr.Len())}
	for _, s := range tr.Steps() {
		doc.Steps = append(doc.Steps, stepDoc{Index: s.Index, Phase: s.Phase, Description: s.Description, Highlight: s.Highlight})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

// SPDX-License-Identifier: MIT

package apsp

import (
	"fmt"

	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/trace"
)

// Algorithm is the trace name used by this package.
const Algorithm = "floyd-warshall"

// Snapshot is the state at one step.
type Snapshot struct {
	// Matrix is the distance and next-hop state after the step.
	Matrix *Matrix

	// K, I, J locate the probe; -1 when the step is not a probe.
	K, I, J int

	// Through is d[i][k] + d[k][j], or Inf when either operand is Inf.
	Through int64

	// Relaxations counts improvements so far.
	Relaxations int
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot {
	s.Matrix = s.Matrix.Clone()
	return s
}

// Result summarises a run.
type Result struct {
	// Matrix is the final distance matrix.
	Matrix *Matrix

	// Relaxations is the number of strict improvements.
	Relaxations int

	// NegativeCycle is true when some d[i][i] < 0 after the sweep.
	NegativeCycle bool
}

// Options configures a run.
type Options struct {
	// RelaxOnly drops steps for probes that did not improve a cell.
	RelaxOnly bool
}

// Option mutates Options.
type Option func(*Options)

// WithRelaxOnly records only relaxing probes (plus the per-k marker steps).
func WithRelaxOnly() Option {
	return func(o *Options) { o.RelaxOnly = true }
}

// DefaultOptions records every probe.
func DefaultOptions() Options { return Options{} }

// CellID names the cell (i, j) for highlight sets: "<row id>:<column id>".
func CellID(m *Matrix, i, j int) string { return m.IDs[i] + ":" + m.IDs[j] }

// FloydWarshallGraph builds the matrix of g and runs FloydWarshall on it.
func FloydWarshallGraph(g *graph.Graph, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	m, err := FromGraph(g)
	if err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}

	return FloydWarshall(m, opts...)
}

// FloydWarshall records the all-pairs shortest path sweep starting from m.
// m is not modified.
//
// Error Conditions: any error from m.Validate.
//
// Steps:
//  1. Validate m, clone it into the working snapshot, record PhaseInit.
//  2. For k = 0..n-1 record PhaseIntermediate, then for i, then j:
//     a. through = d[i][k] + d[k][j] if both are finite, else Inf; sums
//        saturate at -Inf,
//     b. through < d[i][j]: update d and next-hop, record PhaseRelax,
//     c. otherwise record PhaseNoop (unless WithRelaxOnly).
//  3. Flag a negative cycle if any diagonal went negative; record PhaseDone.
//
// Complexity: O(n³) probes, O(n²) per recorded step.
func FloydWarshall(m *Matrix, opts ...Option) (trace.Trace[Snapshot], Result, error) {
	// 1. Validate and copy.
	if err := m.Validate(); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	work := Snapshot{Matrix: m.Clone(), K: -1, I: -1, J: -1, Through: Inf}
	d, next, ids := work.Matrix.Dist, work.Matrix.Next, work.Matrix.IDs
	n := len(ids)
	rec := trace.NewRecorder(Algorithm, Snapshot.Clone)
	rec.Record(trace.PhaseInit, work, fmt.Sprintf("Initial distances for %d nodes: direct edges only", n))

	// 2. Fixed k → i → j nesting.
	for k := 0; k < n; k++ {
		work.K, work.I, work.J, work.Through = k, -1, -1, Inf
		rec.Record(trace.PhaseIntermediate, work, fmt.Sprintf("Allow paths through %s", ids[k]), ids[k])
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				work.I, work.J = i, j
				// Inf is never an addend: a missing half means no path via k.
				through := Inf
				if d[i][k] != Inf && d[k][j] != Inf {
					through = addDist(d[i][k], d[k][j])
				}
				work.Through = through
				cell := CellID(work.Matrix, i, j)
				// Strict < keeps the existing path on ties.
				if through < d[i][j] {
					old := d[i][j]
					d[i][j] = through
					next[i][j] = next[i][k] // first hop towards k
					work.Relaxations++
					rec.Record(trace.PhaseRelax, work,
						fmt.Sprintf("d[%s][%s]: %s -> %d via %s", ids[i], ids[j], FormatDistance(old), through, ids[k]),
						cell, CellID(work.Matrix, i, k), CellID(work.Matrix, k, j))
					continue
				}
				if !o.RelaxOnly {
					rec.Record(trace.PhaseNoop, work,
						fmt.Sprintf("d[%s][%s] stays %s (via %s: %s)", ids[i], ids[j], FormatDistance(d[i][j]), ids[k], FormatDistance(through)),
						cell)
				}
			}
		}
	}

	// 3. Terminal state.
	res := Result{Relaxations: work.Relaxations}
	// A node that can reach itself at negative cost lies on a negative cycle.
	for i := 0; i < n; i++ {
		if d[i][i] < 0 {
			res.NegativeCycle = true
			break
		}
	}
	work.K, work.I, work.J, work.Through = -1, -1, -1, Inf
	res.Matrix = work.Matrix.Clone()
	desc := fmt.Sprintf("All-pairs shortest paths complete after %d relaxations", work.Relaxations)
	if res.NegativeCycle {
		desc += "; negative cycle detected"
	}
	rec.Record(trace.PhaseDone, work, desc)

	return rec.MustFinish(), res, nil
}

// addDist adds two finite distances, saturating at -Inf. Only a negative
// cycle drives sums that low; positive entries never exceed MaxWeight.
func addDist(a, b int64) int64 {
	s := a + b
	if a < 0 && b < 0 && s >= 0 {
		return -Inf
	}

	return s
}

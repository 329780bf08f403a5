// SPDX-License-Identifier: MIT

package apsp

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
)

// Inf is the "no path" sentinel. It is never used as an addend.
const Inf int64 = math.MaxInt64

// MaxWeight bounds |edge weight|. With at most MaxNodes nodes any simple path
// stays far below Inf.
const MaxWeight int64 = 1 << 40

// MaxNodes bounds the matrix order. Every one of the n³ probes clones the
// n×n matrix, so a full trace grows as n⁵.
const MaxNodes = 20

// Sentinel errors for matrix construction.
var (
	// ErrNilMatrix indicates a nil *Matrix.
	ErrNilMatrix = errors.New("apsp: nil matrix")

	// ErrNonSquare indicates Dist is not n×n with n == len(IDs).
	ErrNonSquare = errors.New("apsp: matrix is not square")

	// ErrNonZeroDiagonal indicates a non-zero distance from a node to itself.
	ErrNonZeroDiagonal = errors.New("apsp: diagonal must be zero")

	// ErrWeightRange indicates an edge weight outside [-MaxWeight, MaxWeight].
	ErrWeightRange = errors.New("apsp: edge weight out of range")

	// ErrTooLarge indicates more than MaxNodes nodes.
	ErrTooLarge = errors.New("apsp: too many nodes")

	// ErrBadIDs indicates empty or duplicate node ids.
	ErrBadIDs = errors.New("apsp: node ids must be unique and non-empty")

	// ErrInvalidGraph indicates a graph that fails graph.Validate.
	ErrInvalidGraph = errors.New("apsp: invalid graph")
)

// Matrix is the distance working model: Dist[i][j] is the best known distance
// from IDs[i] to IDs[j]; Next[i][j] is the index of the first hop on that path,
// or -1 when there is none.
type Matrix struct {
	IDs  []string
	Dist [][]int64
	Next [][]int
}

// NewMatrix returns an n×n matrix with 0 on the diagonal and Inf elsewhere.
func NewMatrix(ids ...string) (*Matrix, error) {
	if len(ids) > MaxNodes {
		return nil, errors.Wrapf(ErrTooLarge, "%d > %d", len(ids), MaxNodes)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			return nil, errors.Wrapf(ErrBadIDs, "%q", id)
		}
		seen[id] = struct{}{}
	}
	n := len(ids)
	m := &Matrix{IDs: append([]string(nil), ids...), Dist: make([][]int64, n), Next: make([][]int, n)}
	for i := 0; i < n; i++ {
		m.Dist[i] = make([]int64, n)
		m.Next[i] = make([]int, n)
		for j := 0; j < n; j++ {
			m.Next[i][j] = -1
			if i != j {
				m.Dist[i][j] = Inf
			}
		}
	}

	return m, nil
}

// FromGraph builds the initial distance matrix of g in node insertion order.
// Undirected edges fill both directions; among parallel edges the lightest
// wins; self-loops are ignored.
//
// Error Conditions:
//   - ErrInvalidGraph : g is nil or inconsistent.
//   - ErrWeightRange  : some |weight| > MaxWeight.
//   - ErrTooLarge     : more than MaxNodes nodes.
func FromGraph(g *graph.Graph) (*Matrix, error) {
	if g == nil {
		return nil, ErrInvalidGraph
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("apsp: %w: %w", ErrInvalidGraph, err)
	}
	m, err := NewMatrix(g.NodeIDs()...)
	if err != nil {
		return nil, err
	}
	for _, e := range g.Edges {
		if err := m.SetEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, err
		}
		if !g.Directed {
			if err := m.SetEdge(e.Target, e.Source, e.Weight); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// SetEdge records a direct edge u→v of weight w, keeping the lighter of an
// existing entry and w. Self-loops are ignored.
func (m *Matrix) SetEdge(u, v string, w int64) error {
	if w > MaxWeight || w < -MaxWeight {
		return errors.Wrapf(ErrWeightRange, "%s->%s weight %d", u, v, w)
	}
	i, j := m.Index(u), m.Index(v)
	if i < 0 || j < 0 {
		return errors.Wrapf(ErrBadIDs, "edge %s->%s names an unknown node", u, v)
	}
	if i == j {
		return nil
	}
	if w < m.Dist[i][j] {
		m.Dist[i][j] = w
		m.Next[i][j] = j
	}

	return nil
}

// Validate checks shape, ids and the zero diagonal.
func (m *Matrix) Validate() error {
	if m == nil {
		return ErrNilMatrix
	}
	n := len(m.IDs)
	if n > MaxNodes {
		return errors.Wrapf(ErrTooLarge, "%d > %d", n, MaxNodes)
	}
	if len(m.Dist) != n || len(m.Next) != n {
		return errors.Wrapf(ErrNonSquare, "%d ids, %d rows", n, len(m.Dist))
	}
	for i := 0; i < n; i++ {
		if len(m.Dist[i]) != n || len(m.Next[i]) != n {
			return errors.Wrapf(ErrNonSquare, "row %d has %d columns", i, len(m.Dist[i]))
		}
		if m.Dist[i][i] != 0 {
			return errors.Wrapf(ErrNonZeroDiagonal, "d[%s][%s] = %d", m.IDs[i], m.IDs[i], m.Dist[i][i])
		}
		for j := 0; j < n; j++ {
			if d := m.Dist[i][j]; d != Inf && (d > MaxWeight*MaxNodes || d < -MaxWeight*MaxNodes) {
				return errors.Wrapf(ErrWeightRange, "d[%d][%d] = %d", i, j, d)
			}
		}
	}

	return nil
}

// Index returns the row of id, or -1.
func (m *Matrix) Index(id string) int {
	for i, x := range m.IDs {
		if x == id {
			return i
		}
	}

	return -1
}

// Order returns n.
func (m *Matrix) Order() int { return len(m.IDs) }

// Clone deep-copies m.
// Complexity: O(n²).
func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}
	n := len(m.IDs)
	c := &Matrix{IDs: append([]string(nil), m.IDs...), Dist: make([][]int64, n), Next: make([][]int, n)}
	for i := 0; i < n; i++ {
		c.Dist[i] = append([]int64(nil), m.Dist[i]...)
		c.Next[i] = append([]int(nil), m.Next[i]...)
	}

	return c
}

// Path returns the node ids of the shortest path from u to v using the
// next-hop matrix, or nil when v is unreachable.
func (m *Matrix) Path(u, v string) []string {
	i, j := m.Index(u), m.Index(v)
	if i < 0 || j < 0 {
		return nil
	}
	if i == j {
		return []string{u}
	}
	if m.Next[i][j] < 0 {
		return nil
	}
	path := []string{u}
	for steps := 0; i != j; steps++ {
		if steps > len(m.IDs) {
			// Only possible with a negative cycle on the way.
			return nil
		}
		i = m.Next[i][j]
		path = append(path, m.IDs[i])
	}

	return path
}

// FormatDistance renders d, using "∞" for Inf.
func FormatDistance(d int64) string {
	switch d {
	case Inf:
		return "∞"
	case -Inf:
		return "-∞"
	}

	return fmt.Sprintf("%d", d)
}

// String renders the distance matrix as aligned text.
func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("   ")
	for _, id := range m.IDs {
		fmt.Fprintf(&b, "%4s", id)
	}
	for i, row := range m.Dist {
		fmt.Fprintf(&b, "\n%3s", m.IDs[i])
		for _, d := range row {
			fmt.Fprintf(&b, "%4s", FormatDistance(d))
		}
	}

	return b.String()
}

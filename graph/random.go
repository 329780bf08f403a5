package graph

import (
	"fmt"
	"math/rand"

	"github.com/cockroachdb/errors"
)

// MaxRandomNodes bounds n in Random.
const MaxRandomNodes = 64

// ErrRandomParams indicates invalid arguments to Random.
var ErrRandomParams = errors.New("graph: invalid random graph parameters")

// Random samples a graph over n nodes "v0".."v{n-1}", including each
// admissible edge independently with probability p and weight drawn
// uniformly from [1, maxWeight]. Undirected graphs try each pair i<j once;
// directed graphs try every ordered pair i != j. There are no self-loops.
//
// Trials run in a fixed order (i ascending, then j ascending), so a seed
// always yields the same graph.
//
// Error Conditions:
//   - ErrRandomParams: n outside [1, MaxRandomNodes], p outside [0, 1] or maxWeight < 1.
//
// Complexity: O(n²).
func Random(n int, p float64, seed, maxWeight int64, opts ...Option) (*Graph, error) {
	if n < 1 || n > MaxRandomNodes || p < 0 || p > 1 || maxWeight < 1 {
		return nil, errors.Wrapf(ErrRandomParams, "n=%d p=%g max weight=%d", n, p, maxWeight)
	}
	g := New(opts...)
	for i := 0; i < n; i++ {
		g.Nodes = append(g.Nodes, Node{ID: fmt.Sprintf("v%d", i)})
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		j := i + 1
		if g.Directed {
			j = 0
		}
		for ; j < n; j++ {
			if i == j || rng.Float64() >= p {
				continue
			}
			if _, err := g.AddEdge(g.Nodes[i].ID, g.Nodes[j].ID, 1+rng.Int63n(maxWeight)); err != nil {
				return nil, errors.NewAssertionErrorWithWrappedErrf(err, "graph: random edge")
			}
		}
	}

	return g, nil
}

package flow

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/graph"
)

// arc is one direction of an edge in the residual network.
type arc struct {
	edge    int
	forward bool // Source→Target
}

// network is the residual view over a snapshot's edges and flows.
type network struct {
	g    *graph.Graph
	flow []int64
}

// residual returns the spare capacity of a.
func (n network) residual(a arc) int64 {
	e := n.g.Edges[a.edge]
	f := n.flow[a.edge]
	switch {
	case a.forward:
		return e.Weight - f
	case n.g.Directed:
		return f
	default:
		return e.Weight + f
	}
}

// push sends b units along a.
func (n network) push(a arc, b int64) {
	if a.forward {
		n.flow[a.edge] += b
	} else {
		n.flow[a.edge] -= b
	}
}

// incident returns every arc leaving u, saturated or not, in edge order,
// paired with its far end. Loops are skipped.
func (n network) incident(u string) ([]arc, []string) {
	var out []arc
	var to []string
	for i, e := range n.g.Edges {
		switch {
		case e.Source == e.Target:
			continue
		case e.Source == u:
			out = append(out, arc{edge: i, forward: true})
		case e.Target == u:
			out = append(out, arc{edge: i, forward: false})
		default:
			continue
		}
		to = append(to, e.Other(u))
	}

	return out, to
}

// arcs is incident restricted to arcs with spare capacity.
func (n network) arcs(u string) ([]arc, []string) {
	all, ends := n.incident(u)
	var out []arc
	var to []string
	for k, a := range all {
		if n.residual(a) > 0 {
			out = append(out, a)
			to = append(to, ends[k])
		}
	}

	return out, to
}

// search yields augmenting paths one at a time. levels is non-nil when the
// call rebuilt a level graph first.
type search interface {
	next(n network, source, sink string) (path []arc, levels []int)
}

// finder is a stateless search returning one path or nil.
type finder func(n network, source, sink string) []arc

func (f finder) next(n network, source, sink string) ([]arc, []int) { return f(n, source, sink), nil }

// shortestPath is the Edmonds–Karp search: breadth-first, stopping as soon
// as sink is discovered.
func shortestPath(n network, source, sink string) []arc {
	via := map[string]arc{}
	seen := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		arcs, to := n.arcs(u)
		for k, a := range arcs {
			v := to[k]
			if seen[v] {
				continue
			}
			seen[v] = true
			via[v] = a
			if v == sink {
				return unwind(n, via, source, sink)
			}
			queue = append(queue, v)
		}
	}

	return nil
}

// firstPath is the Ford–Fulkerson search: depth-first, returning the first
// path that reaches sink.
func firstPath(n network, source, sink string) []arc {
	seen := map[string]bool{}
	var stack []arc
	var dfs func(u string) bool
	dfs = func(u string) bool {
		seen[u] = true
		if u == sink {
			return true
		}
		arcs, to := n.arcs(u)
		for k, a := range arcs {
			if seen[to[k]] {
				continue
			}
			stack = append(stack, a)
			if dfs(to[k]) {
				return true
			}
			stack = stack[:len(stack)-1]
		}
		return false
	}
	if !dfs(source) {
		return nil
	}

	return stack
}

// unwind rebuilds the arc sequence source→sink from predecessor arcs.
func unwind(n network, via map[string]arc, source, sink string) []arc {
	var rev []arc
	for cur := sink; cur != source; {
		a := via[cur]
		rev = append(rev, a)
		cur = n.tail(a)
	}
	path := make([]arc, len(rev))
	for i, a := range rev {
		path[len(rev)-1-i] = a
	}

	return path
}

// tail is the node a leaves from.
func (n network) tail(a arc) string {
	e := n.g.Edges[a.edge]
	if a.forward {
		return e.Source
	}
	return e.Target
}

// head is the node a enters.
func (n network) head(a arc) string {
	e := n.g.Edges[a.edge]
	if a.forward {
		return e.Target
	}
	return e.Source
}

// reachable marks every node reachable from source over arcs with spare
// capacity.
func (n network) reachable(source string) map[string]bool {
	seen := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		_, to := n.arcs(u)
		for _, v := range to {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}

	return seen
}

// dinic searches the current level graph depth-first, skipping arcs that
// led nowhere, and rebuilds the levels by BFS once it is exhausted.
type dinic struct {
	level []int
	iter  []int
	adj   [][]arc
	ends  [][]string
}

func (d *dinic) next(n network, source, sink string) ([]arc, []int) {
	if d.adj == nil {
		d.adj = make([][]arc, len(n.g.Nodes))
		d.ends = make([][]string, len(n.g.Nodes))
		for i, node := range n.g.Nodes {
			d.adj[i], d.ends[i] = n.incident(node.ID)
		}
	}
	if d.level != nil {
		if p := d.blocking(n, source, sink); p != nil {
			return p, nil
		}
	}
	d.levels(n, source)
	levels := append([]int(nil), d.level...)
	if d.level[n.g.NodeIndex(sink)] < 0 {
		return nil, levels
	}
	p := d.blocking(n, source, sink)
	if p == nil {
		panic(errors.AssertionFailedf("flow: sink at level %d but no level path", d.level[n.g.NodeIndex(sink)]))
	}

	return p, levels
}

// levels assigns BFS distances over arcs with spare capacity and resets the
// per-node arc cursors.
func (d *dinic) levels(n network, source string) {
	d.level = make([]int, len(n.g.Nodes))
	for i := range d.level {
		d.level[i] = -1
	}
	d.iter = make([]int, len(n.g.Nodes))
	d.level[n.g.NodeIndex(source)] = 0
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		lu := d.level[n.g.NodeIndex(u)]
		_, to := n.arcs(u)
		for _, v := range to {
			if vi := n.g.NodeIndex(v); d.level[vi] < 0 {
				d.level[vi] = lu + 1
				queue = append(queue, v)
			}
		}
	}
}

// blocking returns the next source→sink path whose arcs all climb one level,
// or nil when the level graph is blocked.
func (d *dinic) blocking(n network, source, sink string) []arc {
	var stack []arc
	var dfs func(u string) bool
	dfs = func(u string) bool {
		if u == sink {
			return true
		}
		ui := n.g.NodeIndex(u)
		for ; d.iter[ui] < len(d.adj[ui]); d.iter[ui]++ {
			a, v := d.adj[ui][d.iter[ui]], d.ends[ui][d.iter[ui]]
			if n.residual(a) == 0 || d.level[n.g.NodeIndex(v)] != d.level[ui]+1 {
				continue
			}
			stack = append(stack, a)
			if dfs(v) {
				return true
			}
			stack = stack[:len(stack)-1]
		}
		return false
	}
	if !dfs(source) {
		return nil
	}

	return stack
}

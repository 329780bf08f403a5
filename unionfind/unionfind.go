package unionfind

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrUnknownElement indicates an operation referenced an id that was never added.
var ErrUnknownElement = errors.New("unionfind: unknown element")

// DisjointSet is a union-find forest keyed by string ids.
// The zero value is not usable; create one with New.
type DisjointSet struct {
	parent map[string]string // parent[x] == x iff x is a root
	rank   map[string]int    // upper bound on tree height, meaningful for roots
	order  []string          // insertion order, for deterministic iteration
	sets   int               // number of disjoint sets
}

// New creates a DisjointSet where every id starts in its own singleton set.
// Duplicate ids are ignored.
// Complexity: O(n).
func New(ids ...string) *DisjointSet {
	d := &DisjointSet{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
		order:  make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		d.Add(id)
	}

	return d
}

// Add inserts id as a singleton set. It reports false if id already existed.
func (d *DisjointSet) Add(id string) bool {
	if _, ok := d.parent[id]; ok {
		return false
	}
	d.parent[id] = id
	d.rank[id] = 0
	d.order = append(d.order, id)
	d.sets++

	return true
}

// Has reports whether id was added.
func (d *DisjointSet) Has(id string) bool {
	_, ok := d.parent[id]
	return ok
}

// Find returns the representative of the set containing x.
// Every node on the walked path is re-pointed at the root.
// It panics if x was never added; use Lookup for unchecked input.
// Complexity: O(α(n)) amortized.
func (d *DisjointSet) Find(x string) string {
	root, err := d.Lookup(x)
	if err != nil {
		panic(errors.AssertionFailedf("unionfind: Find(%q): %v", x, err))
	}

	return root
}

// Lookup is Find that returns ErrUnknownElement instead of panicking.
func (d *DisjointSet) Lookup(x string) (string, error) {
	if _, ok := d.parent[x]; !ok {
		return "", errors.Wrapf(ErrUnknownElement, "%q", x)
	}

	// 1. Walk up to the root.
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}

	// 2. Compress: point every node on the path directly at root.
	for x != root {
		next := d.parent[x]
		d.parent[x] = root
		x = next
	}

	return root, nil
}

// Union merges the sets containing x and y.
// It returns false when they already share a root (the edge would close a
// cycle), true when two sets were merged. The lower-rank root is attached under
// the higher-rank root; on a tie, y's root goes under x's root and x's rank grows.
// It panics if either id was never added.
// Complexity: O(α(n)) amortized.
func (d *DisjointSet) Union(x, y string) bool {
	rx := d.Find(x)
	ry := d.Find(y)
	if rx == ry {
		return false
	}

	switch {
	case d.rank[rx] < d.rank[ry]:
		d.parent[rx] = ry
	case d.rank[rx] > d.rank[ry]:
		d.parent[ry] = rx
	default:
		d.parent[ry] = rx
		d.rank[rx]++
	}
	d.sets--

	return true
}

// Connected reports whether x and y are in the same set.
func (d *DisjointSet) Connected(x, y string) bool {
	return d.Find(x) == d.Find(y)
}

// Sets returns the current number of disjoint sets.
func (d *DisjointSet) Sets() int { return d.sets }

// Len returns the number of elements.
func (d *DisjointSet) Len() int { return len(d.order) }

// Rank returns the rank recorded for x (meaningful when x is a root).
func (d *DisjointSet) Rank(x string) int { return d.rank[x] }

// Parent returns x's current parent pointer without compressing.
func (d *DisjointSet) Parent(x string) string { return d.parent[x] }

// Groups returns the partition as sorted slices of members, ordered by their
// smallest member. It compresses every path as a side effect.
// Complexity: O(n log n).
func (d *DisjointSet) Groups() [][]string {
	byRoot := make(map[string][]string, d.sets)
	for _, id := range d.order {
		r := d.Find(id)
		byRoot[r] = append(byRoot[r], id)
	}
	out := make([][]string, 0, len(byRoot))
	for _, members := range byRoot {
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}

// Clone returns an independent copy, parent pointers and ranks included.
func (d *DisjointSet) Clone() *DisjointSet {
	c := &DisjointSet{
		parent: make(map[string]string, len(d.parent)),
		rank:   make(map[string]int, len(d.rank)),
		order:  append([]string(nil), d.order...),
		sets:   d.sets,
	}
	for k, v := range d.parent {
		c.parent[k] = v
	}
	for k, v := range d.rank {
		c.rank[k] = v
	}

	return c
}

package bst

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// None marks an absent child or an empty tree's root.
const None = -1

// MaxNodes bounds the arena size accepted by the generators.
const MaxNodes = 512

var (
	// ErrInvalidTree indicates an arena whose links do not form a tree.
	ErrInvalidTree = errors.New("bst: invalid tree")

	// ErrNoValues is returned by Build for an empty input.
	ErrNoValues = errors.New("bst: no values to insert")

	// ErrTooLarge indicates the arena would exceed MaxNodes.
	ErrTooLarge = errors.New("bst: too many nodes")
)

// Status tags a node for rendering.
type Status uint8

const (
	StatusDefault  Status = iota
	StatusCompare         // being compared at this step
	StatusPath            // on the path already walked
	StatusFound           // search hit
	StatusInserted        // node created at this step
)

func (s Status) String() string {
	switch s {
	case StatusDefault:
		return "default"
	case StatusCompare:
		return "compare"
	case StatusPath:
		return "path"
	case StatusFound:
		return "found"
	case StatusInserted:
		return "inserted"
	}

	return fmt.Sprintf("status(%d)", s)
}

// Node is one arena slot. ID equals the slot index.
type Node struct {
	ID     int
	Value  int
	Left   int
	Right  int
	Status Status
}

// Tree is an arena-backed binary search tree.
type Tree struct {
	Nodes []Node
	Root  int
}

// NewTree returns an empty tree.
func NewTree() Tree { return Tree{Root: None} }

// Key is the highlight identifier of node id.
func Key(id int) string { return fmt.Sprintf("n%d", id) }

// Len reports the node count.
func (t Tree) Len() int { return len(t.Nodes) }

// Clone returns an independent copy.
func (t Tree) Clone() Tree {
	return Tree{Nodes: append([]Node(nil), t.Nodes...), Root: t.Root}
}

// Validate checks that the arena links form a single tree rooted at Root
// with every node reachable exactly once, and that in-order values respect
// the ordering rule.
func (t Tree) Validate() error {
	n := len(t.Nodes)
	if n == 0 {
		if t.Root != None {
			return errors.Wrapf(ErrInvalidTree, "empty arena with root %d", t.Root)
		}
		return nil
	}
	if n > MaxNodes {
		return errors.Wrapf(ErrTooLarge, "%d > %d", n, MaxNodes)
	}
	if t.Root < 0 || t.Root >= n {
		return errors.Wrapf(ErrInvalidTree, "root %d out of range", t.Root)
	}
	seen := make([]bool, n)
	var walk func(id, lo, hi int, hasLo, hasHi bool) error
	walk = func(id, lo, hi int, hasLo, hasHi bool) error {
		if id == None {
			return nil
		}
		if id < 0 || id >= n {
			return errors.Wrapf(ErrInvalidTree, "child %d out of range", id)
		}
		if seen[id] {
			return errors.Wrapf(ErrInvalidTree, "node %d reachable twice", id)
		}
		seen[id] = true
		nd := t.Nodes[id]
		if nd.ID != id {
			return errors.Wrapf(ErrInvalidTree, "slot %d holds id %d", id, nd.ID)
		}
		if (hasLo && nd.Value < lo) || (hasHi && nd.Value >= hi) {
			return errors.Wrapf(ErrInvalidTree, "node %d value %d violates ordering", id, nd.Value)
		}
		if err := walk(nd.Left, lo, nd.Value, hasLo, true); err != nil {
			return err
		}
		return walk(nd.Right, nd.Value, hi, true, hasHi)
	}
	if err := walk(t.Root, 0, 0, false, false); err != nil {
		return err
	}
	for id, ok := range seen {
		if !ok {
			return errors.Wrapf(ErrInvalidTree, "node %d unreachable", id)
		}
	}

	return nil
}

// InOrder lists values in sorted order.
func (t Tree) InOrder() []int {
	out := make([]int, 0, len(t.Nodes))
	var walk func(id int)
	walk = func(id int) {
		if id == None {
			return
		}
		walk(t.Nodes[id].Left)
		out = append(out, t.Nodes[id].Value)
		walk(t.Nodes[id].Right)
	}
	walk(t.Root)

	return out
}

// Height is the number of nodes on the longest root-to-leaf path.
func (t Tree) Height() int {
	var h func(id int) int
	h = func(id int) int {
		if id == None {
			return 0
		}
		return 1 + max(h(t.Nodes[id].Left), h(t.Nodes[id].Right))
	}

	return h(t.Root)
}

// String renders the tree in parenthesised pre-order, e.g. "50(30(_ 40) 70)".
func (t Tree) String() string {
	var b strings.Builder
	var walk func(id int)
	walk = func(id int) {
		if id == None {
			b.WriteString("_")
			return
		}
		nd := t.Nodes[id]
		fmt.Fprintf(&b, "%d", nd.Value)
		if nd.Left == None && nd.Right == None {
			return
		}
		b.WriteString("(")
		walk(nd.Left)
		b.WriteString(" ")
		walk(nd.Right)
		b.WriteString(")")
	}
	walk(t.Root)

	return b.String()
}

func (t *Tree) resetStatus() {
	for i := range t.Nodes {
		t.Nodes[i].Status = StatusDefault
	}
}

package divide

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// None marks an absent child.
const None = -1

// MaxValues bounds the input length.
const MaxValues = 256

// ErrTooLarge indicates an input longer than MaxValues.
var ErrTooLarge = errors.New("divide: too many values")

// Status tags a recursion node.
type Status uint8

const (
	StatusPending Status = iota // created, not yet processed
	StatusActive                // on the current call stack
	StatusSorted                // subtree complete; Values hold the result
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusSorted:
		return "sorted"
	}

	return fmt.Sprintf("status(%d)", s)
}

// Node is one recursive call.
type Node struct {
	ID     int
	Depth  int
	Values []int
	Left   int
	Right  int

	// Pivot is the partition value for quick sort nodes; valid when HasPivot.
	Pivot    int
	HasPivot bool

	Status Status
}

// Tree is the recursion tree; node 0 is the root.
type Tree struct {
	Nodes []Node
}

// Key is the highlight identifier of node id.
func Key(id int) string { return "call" + strconv.Itoa(id) }

// Clone deep-copies t, including every node's values.
func (t Tree) Clone() Tree {
	out := Tree{Nodes: make([]Node, len(t.Nodes))}
	for i, n := range t.Nodes {
		n.Values = append([]int(nil), n.Values...)
		out.Nodes[i] = n
	}

	return out
}

// Depth is the deepest node's depth plus one; 0 for an empty tree.
func (t Tree) Depth() int {
	d := 0
	for _, n := range t.Nodes {
		d = max(d, n.Depth+1)
	}

	return d
}

func (t *Tree) add(depth int, values []int) int {
	id := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		ID:     id,
		Depth:  depth,
		Values: append([]int(nil), values...),
		Left:   None,
		Right:  None,
	})

	return id
}

func formatValues(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

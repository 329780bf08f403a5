package bst

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// Trace names used by this package.
const (
	AlgorithmInsert = "bst-insert"
	AlgorithmSearch = "bst-search"
	AlgorithmBuild  = "bst-build"
)

// Snapshot is the state at one step.
type Snapshot struct {
	Tree   Tree
	Target int   // value being inserted or searched
	Path   []int // node ids visited so far in the current descent
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Tree: s.Tree.Clone(), Target: s.Target, Path: append([]int(nil), s.Path...)}
}

// Result summarises an insert or search.
type Result struct {
	// Tree is the tree after the operation.
	Tree Tree

	// Found reports a search hit; always false for inserts.
	Found bool

	// Node is the id of the found or inserted node, or None.
	Node int

	// Path lists the node ids compared, root first.
	Path []int
}

// Insert records inserting v into t. t is not modified.
//
// Steps:
//  1. PhaseInit with the untouched tree.
//  2. Per visited node: PhaseCompare, then PhaseGoLeft or PhaseGoRight when
//     the matching child exists.
//  3. PhaseInsert when an empty slot is reached.
func Insert(t Tree, v int) (trace.Trace[Snapshot], Result, error) {
	if err := t.Validate(); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	if t.Len() >= MaxNodes {
		return trace.Trace[Snapshot]{}, Result{}, errors.Wrapf(ErrTooLarge, "tree already holds %d nodes", t.Len())
	}
	work := Snapshot{Tree: t.Clone(), Target: v}
	work.Tree.resetStatus()
	rec := trace.NewRecorder(AlgorithmInsert, Snapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Insert %d into a tree of %d nodes", v, t.Len())
	id := insert(rec, &work, v)

	return rec.MustFinish(), Result{Tree: work.Tree, Node: id, Path: work.Path}, nil
}

// Search records looking up v in t. t is not modified.
//
// Steps:
//  1. PhaseInit.
//  2. Per visited node: PhaseCompare, then PhaseFound on equality, or
//     PhaseGoLeft/PhaseGoRight.
//  3. PhaseNotFound when the walk falls off the tree.
func Search(t Tree, v int) (trace.Trace[Snapshot], Result, error) {
	if err := t.Validate(); err != nil {
		return trace.Trace[Snapshot]{}, Result{}, err
	}
	work := Snapshot{Tree: t.Clone(), Target: v}
	work.Tree.resetStatus()
	rec := trace.NewRecorder(AlgorithmSearch, Snapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Search for %d", v)

	res := Result{Node: None}
	cur := work.Tree.Root
	for cur != None {
		nd := &work.Tree.Nodes[cur]
		nd.Status = StatusCompare
		work.Path = append(work.Path, cur)
		rec.Record(trace.PhaseCompare, work, fmt.Sprintf("Compare %d with %d", v, nd.Value), Key(cur))
		if v == nd.Value {
			nd.Status = StatusFound
			res.Found, res.Node = true, cur
			rec.Record(trace.PhaseFound, work, fmt.Sprintf("Found %d", v), Key(cur))
			break
		}
		nd.Status = StatusPath
		next, phase, desc := step(*nd, v)
		if next == None {
			break
		}
		rec.Record(phase, work, desc, Key(cur), Key(next))
		cur = next
	}
	if !res.Found {
		rec.Recordf(trace.PhaseNotFound, work, "%d is not in the tree", v)
	}
	res.Tree, res.Path = work.Tree, work.Path

	return rec.MustFinish(), res, nil
}

// Build records inserting values one by one into an empty tree, then a
// PhaseDone step with the finished tree.
func Build(values []int) (trace.Trace[Snapshot], Tree, error) {
	if len(values) == 0 {
		return trace.Trace[Snapshot]{}, Tree{}, ErrNoValues
	}
	if len(values) > MaxNodes {
		return trace.Trace[Snapshot]{}, Tree{}, errors.Wrapf(ErrTooLarge, "%d values > %d", len(values), MaxNodes)
	}
	work := Snapshot{Tree: NewTree()}
	rec := trace.NewRecorder(AlgorithmBuild, Snapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Build a tree from %d values", len(values))
	for _, v := range values {
		work.Tree.resetStatus()
		work.Target, work.Path = v, nil
		insert(rec, &work, v)
	}
	work.Tree.resetStatus()
	work.Path = nil
	rec.Recordf(trace.PhaseDone, work, "Tree built: %d nodes, height %d", work.Tree.Len(), work.Tree.Height())

	return rec.MustFinish(), work.Tree, nil
}

// insert walks from the root and appends v, recording every comparison.
func insert(rec *trace.Recorder[Snapshot], work *Snapshot, v int) int {
	t := &work.Tree
	id := len(t.Nodes)
	if t.Root == None {
		t.Nodes = append(t.Nodes, Node{ID: id, Value: v, Left: None, Right: None, Status: StatusInserted})
		t.Root = id
		work.Path = append(work.Path, id)
		rec.Record(trace.PhaseInsert, *work, fmt.Sprintf("Insert %d as the root", v), Key(id))
		return id
	}

	cur := t.Root
	for {
		nd := &t.Nodes[cur]
		nd.Status = StatusCompare
		work.Path = append(work.Path, cur)
		rec.Record(trace.PhaseCompare, *work, fmt.Sprintf("Compare %d with %d", v, nd.Value), Key(cur))
		nd.Status = StatusPath
		next, phase, desc := step(*nd, v)
		if next != None {
			rec.Record(phase, *work, desc, Key(cur), Key(next))
			cur = next
			continue
		}

		side := "right"
		if v < nd.Value {
			nd.Left = id
			side = "left"
		} else {
			nd.Right = id
		}
		parent := nd.Value
		t.Nodes = append(t.Nodes, Node{ID: id, Value: v, Left: None, Right: None, Status: StatusInserted})
		work.Path = append(work.Path, id)
		rec.Record(trace.PhaseInsert, *work, fmt.Sprintf("Insert %d as %s child of %d", v, side, parent), Key(cur), Key(id))
		return id
	}
}

// step applies the ordering rule at nd: the child to descend into (None if
// absent), the phase and its description.
func step(nd Node, v int) (int, trace.Phase, string) {
	if v < nd.Value {
		return nd.Left, trace.PhaseGoLeft, fmt.Sprintf("%d < %d: go left", v, nd.Value)
	}

	return nd.Right, trace.PhaseGoRight, fmt.Sprintf("%d >= %d: go right", v, nd.Value)
}

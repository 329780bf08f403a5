package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/apsp"
	"github.com/katalvlaran/algotrace/backtrack"
	"github.com/katalvlaran/algotrace/bst"
	"github.com/katalvlaran/algotrace/divide"
	"github.com/katalvlaran/algotrace/dtw"
	"github.com/katalvlaran/algotrace/flow"
	"github.com/katalvlaran/algotrace/graph"
	"github.com/katalvlaran/algotrace/mst"
	"github.com/katalvlaran/algotrace/scan"
	"github.com/katalvlaran/algotrace/topo"
	"github.com/katalvlaran/algotrace/trace"
	"github.com/katalvlaran/algotrace/traverse"
)

// Algorithm families, used to group listings.
const (
	FamilyTree      = "tree"
	FamilyGraph     = "graph"
	FamilyDivide    = "divide"
	FamilyBacktrack = "backtrack"
	FamilyScan      = "scan"
	FamilyFlow      = "flow"
	FamilyDP        = "dp"
)

// DemoEdges is the edge list of graph.Demo, used when no edges are given.
const DemoEdges = "A-B:4,A-C:2,A-D:5,B-C:6,B-D:3,C-E:4,D-E:2,D-F:6,E-F:3"

// DemoNetwork is the default flow network, directed from s to t.
const DemoNetwork = "s->a:10,s->b:5,a->b:15,a->t:5,b->t:10"

// RandomPrefix selects a sampled graph instead of an edge list:
// "random:N:SEED" gives graph.Random(N, RandomDensity, SEED, RandomMaxWeight).
const RandomPrefix = "random:"

// Sampling parameters behind RandomPrefix.
const (
	RandomDensity   = 0.4
	RandomMaxWeight = 9
)

// DemoMaze is the default maze: one dead end before the goal.
const DemoMaze = "S..#./.#.#./.#.../.###./....G"

// BSTBuildParams drives bst-build.
type BSTBuildParams struct {
	Values []int `mapstructure:"values" validate:"min=1,max=512"`
}

// BSTQueryParams drives bst-insert and bst-search: Values build the tree
// silently, then Value is inserted or looked up.
type BSTQueryParams struct {
	Values []int `mapstructure:"values" validate:"max=511"`
	Value  int   `mapstructure:"value"`
}

// MergeSortParams drives merge-sort.
type MergeSortParams struct {
	Values []int `mapstructure:"values" validate:"min=1,max=256"`
}

// QuickSortParams drives quick-sort. A nil Seed keeps the last-element pivot.
type QuickSortParams struct {
	Values []int  `mapstructure:"values" validate:"min=1,max=256"`
	Seed   *int64 `mapstructure:"seed"`
}

// MSTParams drives kruskal and prim. An empty Edges uses graph.Demo.
type MSTParams struct {
	Edges        string `mapstructure:"edges"`
	Root         string `mapstructure:"root"`
	SkipConsider bool   `mapstructure:"skip_consider"`
}

// APSPParams drives floyd-warshall.
type APSPParams struct {
	Edges     string `mapstructure:"edges"`
	Directed  bool   `mapstructure:"directed"`
	RelaxOnly bool   `mapstructure:"relax_only"`
}

// TopoParams drives topo-sort. Nodes of 0 derives the count from Edges.
type TopoParams struct {
	Edges string `mapstructure:"edges"`
	Nodes int    `mapstructure:"nodes" validate:"gte=0,lte=1000"`
}

// TraverseParams drives bfs, dfs and dijkstra. An empty Start uses the
// first node; MaxDepth of 0 and a nil MaxDistance mean no limit.
type TraverseParams struct {
	Edges       string `mapstructure:"edges"`
	Start       string `mapstructure:"start"`
	Directed    bool   `mapstructure:"directed"`
	MaxDepth    int    `mapstructure:"max_depth" validate:"gte=0"`
	MaxDistance *int64 `mapstructure:"max_distance"`
}

// FlowParams drives edmonds-karp, ford-fulkerson and dinic. An empty Source uses
// the first node and an empty Sink the last.
type FlowParams struct {
	Edges            string `mapstructure:"edges"`
	Source           string `mapstructure:"source"`
	Sink             string `mapstructure:"sink"`
	Directed         bool   `mapstructure:"directed"`
	MaxAugmentations int    `mapstructure:"max_augmentations" validate:"min=1"`
}

// DTWParams drives dtw. A nil Window means no band.
type DTWParams struct {
	A            []int `mapstructure:"a" validate:"min=1"`
	B            []int `mapstructure:"b" validate:"min=1"`
	Window       *int  `mapstructure:"window"`
	SlopePenalty int64 `mapstructure:"slope_penalty" validate:"gte=0"`
}

// QueensParams drives n-queens.
type QueensParams struct {
	N        int  `mapstructure:"n" validate:"min=1,max=12"`
	All      bool `mapstructure:"all"`
	Unchoose bool `mapstructure:"unchoose"`
}

// MazeParams drives maze. Rows are separated by newlines or '/'.
type MazeParams struct {
	Grid string `mapstructure:"grid" validate:"required"`
}

// TargetParams drives two-pointers and binary-search.
type TargetParams struct {
	Values []int `mapstructure:"values" validate:"min=1,max=1024"`
	Target int   `mapstructure:"target"`
}

// WindowParams drives sliding-window.
type WindowParams struct {
	Values []int `mapstructure:"values" validate:"min=1,max=1024"`
	K      int   `mapstructure:"k" validate:"min=1"`
}

// HashingParams drives hashing.
type HashingParams struct {
	Keys    []int `mapstructure:"keys" validate:"min=1,max=1024"`
	Buckets int   `mapstructure:"buckets" validate:"min=1,max=64"`
	Lookups []int `mapstructure:"lookups" validate:"max=1024"`
}

// HeapParams drives heap.
type HeapParams struct {
	Values  []int `mapstructure:"values" validate:"min=1,max=1024"`
	Extract int   `mapstructure:"extract" validate:"gte=0"`
}

// Builtins returns an entry for every engine in the module.
func Builtins() []Entry {
	return []Entry{
		define(bst.AlgorithmBuild, FamilyTree, "insert values one by one into an empty BST",
			func() BSTBuildParams { return BSTBuildParams{Values: []int{50, 30, 70, 20, 40, 60, 80}} },
			func(p BSTBuildParams) (trace.Trace[bst.Snapshot], error) {
				tr, _, err := bst.Build(p.Values)
				return tr, err
			}),
		define(bst.AlgorithmInsert, FamilyTree, "insert one value into a BST",
			func() BSTQueryParams { return BSTQueryParams{Values: []int{50, 30, 70, 20, 40}, Value: 35} },
			func(p BSTQueryParams) (trace.Trace[bst.Snapshot], error) {
				tree, err := seedTree(p.Values)
				if err != nil {
					return trace.Trace[bst.Snapshot]{}, err
				}
				tr, _, err := bst.Insert(tree, p.Value)
				return tr, err
			}),
		define(bst.AlgorithmSearch, FamilyTree, "search a BST for one value",
			func() BSTQueryParams { return BSTQueryParams{Values: []int{50, 30, 70, 20, 40}, Value: 40} },
			func(p BSTQueryParams) (trace.Trace[bst.Snapshot], error) {
				tree, err := seedTree(p.Values)
				if err != nil {
					return trace.Trace[bst.Snapshot]{}, err
				}
				tr, _, err := bst.Search(tree, p.Value)
				return tr, err
			}),

		define(divide.AlgorithmMergeSort, FamilyDivide, "merge sort recursion tree",
			func() MergeSortParams { return MergeSortParams{Values: []int{38, 27, 43, 3, 9, 82, 10}} },
			func(p MergeSortParams) (trace.Trace[divide.Snapshot], error) {
				tr, _, err := divide.MergeSort(p.Values)
				return tr, err
			}),
		define(divide.AlgorithmQuickSort, FamilyDivide, "quick sort recursion tree",
			func() QuickSortParams { return QuickSortParams{Values: []int{38, 27, 43, 3, 9, 82, 10}} },
			func(p QuickSortParams) (trace.Trace[divide.Snapshot], error) {
				var opts []divide.Option
				if p.Seed != nil {
					opts = append(opts, divide.WithSeed(*p.Seed))
				}
				tr, _, err := divide.QuickSort(p.Values, opts...)
				return tr, err
			}),

		define(mst.MethodKruskal, FamilyGraph, "Kruskal minimum spanning tree with union-find",
			func() MSTParams { return MSTParams{} },
			func(p MSTParams) (trace.Trace[mst.Snapshot], error) {
				g, err := parseGraph(p.Edges, false)
				if err != nil {
					return trace.Trace[mst.Snapshot]{}, err
				}
				tr, _, err := mst.Kruskal(g, mstOptions(p)...)
				return tr, err
			}),
		define(mst.MethodPrim, FamilyGraph, "Prim minimum spanning tree from a root",
			func() MSTParams { return MSTParams{} },
			func(p MSTParams) (trace.Trace[mst.Snapshot], error) {
				g, err := parseGraph(p.Edges, false)
				if err != nil {
					return trace.Trace[mst.Snapshot]{}, err
				}
				root := p.Root
				if root == "" && len(g.Nodes) > 0 {
					root = g.Nodes[0].ID
				}
				tr, _, err := mst.Prim(g, root, mstOptions(p)...)
				return tr, err
			}),
		define(apsp.Algorithm, FamilyGraph, "Floyd-Warshall all-pairs shortest paths",
			func() APSPParams { return APSPParams{} },
			func(p APSPParams) (trace.Trace[apsp.Snapshot], error) {
				g, err := parseGraph(p.Edges, p.Directed)
				if err != nil {
					return trace.Trace[apsp.Snapshot]{}, err
				}
				var opts []apsp.Option
				if p.RelaxOnly {
					opts = append(opts, apsp.WithRelaxOnly())
				}
				tr, _, err := apsp.FloydWarshallGraph(g, opts...)
				return tr, err
			}),
		define(topo.Algorithm, FamilyGraph, "Kahn topological sort with cycle detection",
			func() TopoParams { return TopoParams{Edges: "0->1,0->2,1->3,2->3,3->4"} },
			func(p TopoParams) (trace.Trace[topo.Snapshot], error) {
				edges, err := topo.ParseEdgeList(p.Edges)
				if err != nil {
					return trace.Trace[topo.Snapshot]{}, err
				}
				tr, _, err := topo.SortEdges(p.Nodes, edges)
				return tr, err
			}),
		define(traverse.AlgorithmBFS, FamilyGraph, "breadth-first search level by level",
			func() TraverseParams { return TraverseParams{} },
			func(p TraverseParams) (trace.Trace[traverse.Snapshot], error) { return runTraverse(traverse.BFS, p) }),
		define(traverse.AlgorithmDFS, FamilyGraph, "recursive depth-first search with finish order",
			func() TraverseParams { return TraverseParams{} },
			func(p TraverseParams) (trace.Trace[traverse.Snapshot], error) { return runTraverse(traverse.DFS, p) }),
		define(traverse.AlgorithmDijkstra, FamilyGraph, "Dijkstra single-source shortest paths",
			func() TraverseParams { return TraverseParams{} },
			func(p TraverseParams) (trace.Trace[traverse.Snapshot], error) {
				return runTraverse(traverse.Dijkstra, p)
			}),

		define(flow.AlgorithmEdmondsKarp, FamilyFlow, "maximum flow along shortest augmenting paths",
			defaultFlow,
			func(p FlowParams) (trace.Trace[flow.Snapshot], error) { return runFlow(flow.EdmondsKarp, p) }),
		define(flow.AlgorithmFordFulkerson, FamilyFlow, "maximum flow along depth-first augmenting paths",
			defaultFlow,
			func(p FlowParams) (trace.Trace[flow.Snapshot], error) { return runFlow(flow.FordFulkerson, p) }),
		define(flow.AlgorithmDinic, FamilyFlow, "maximum flow by blocking flows on level graphs",
			defaultFlow,
			func(p FlowParams) (trace.Trace[flow.Snapshot], error) { return runFlow(flow.Dinic, p) }),

		define(dtw.Algorithm, FamilyDP, "dynamic time warping table fill and traceback",
			func() DTWParams { return DTWParams{A: []int{1, 3, 4, 9, 8}, B: []int{1, 2, 3, 4, 9, 9, 8}} },
			func(p DTWParams) (trace.Trace[dtw.Snapshot], error) {
				opts := []dtw.Option{dtw.WithSlopePenalty(p.SlopePenalty)}
				if p.Window != nil {
					opts = append(opts, dtw.WithWindow(*p.Window))
				}
				tr, _, err := dtw.DTW(p.A, p.B, opts...)
				return tr, err
			}),

		define(backtrack.AlgorithmQueens, FamilyBacktrack, "N-Queens placement with backtracking",
			func() QueensParams { return QueensParams{N: 4, Unchoose: true} },
			func(p QueensParams) (trace.Trace[backtrack.QueensSnapshot], error) {
				var opts []backtrack.QueensOption
				if p.All {
					opts = append(opts, backtrack.WithAllSolutions())
				}
				if !p.Unchoose {
					opts = append(opts, backtrack.WithoutUnchoose())
				}
				tr, _, err := backtrack.NQueens(p.N, opts...)
				return tr, err
			}),
		define(backtrack.AlgorithmMaze, FamilyBacktrack, "depth-first maze solving with dead-end backtracking",
			func() MazeParams { return MazeParams{Grid: DemoMaze} },
			func(p MazeParams) (trace.Trace[backtrack.MazeSnapshot], error) {
				m, err := backtrack.ParseMaze(strings.ReplaceAll(p.Grid, "/", "\n"))
				if err != nil {
					return trace.Trace[backtrack.MazeSnapshot]{}, err
				}
				tr, _, err := backtrack.SolveMaze(m)
				return tr, err
			}),

		define(scan.AlgorithmTwoPointers, FamilyScan, "pair sum on a sorted array with two pointers",
			func() TargetParams { return TargetParams{Values: []int{1, 3, 4, 6, 8, 11}, Target: 10} },
			func(p TargetParams) (trace.Trace[scan.Snapshot], error) {
				tr, _, err := scan.TwoPointers(p.Values, p.Target)
				return tr, err
			}),
		define(scan.AlgorithmSlidingWindow, FamilyScan, "maximum-sum window of size k",
			func() WindowParams { return WindowParams{Values: []int{2, 1, 5, 1, 3, 2}, K: 3} },
			func(p WindowParams) (trace.Trace[scan.Snapshot], error) {
				tr, _, err := scan.SlidingWindow(p.Values, p.K)
				return tr, err
			}),
		define(scan.AlgorithmBinarySearch, FamilyScan, "binary search on a sorted array",
			func() TargetParams { return TargetParams{Values: []int{2, 5, 8, 12, 16, 23, 38, 56, 72, 91}, Target: 23} },
			func(p TargetParams) (trace.Trace[scan.Snapshot], error) {
				tr, _, err := scan.BinarySearch(p.Values, p.Target)
				return tr, err
			}),
		define(scan.AlgorithmHashing, FamilyScan, "hash table with separate chaining",
			func() HashingParams {
				return HashingParams{Keys: []int{15, 11, 27, 8, 12, 22}, Buckets: 7, Lookups: []int{27, 5}}
			},
			func(p HashingParams) (trace.Trace[scan.Snapshot], error) {
				tr, _, err := scan.Hashing(p.Keys, p.Buckets, p.Lookups)
				return tr, err
			}),
		define(scan.AlgorithmHeap, FamilyScan, "binary min-heap inserts and extractions",
			func() HeapParams { return HeapParams{Values: []int{5, 3, 8, 1, 9, 2}, Extract: 3} },
			func(p HeapParams) (trace.Trace[scan.Snapshot], error) {
				tr, _, err := scan.MinHeap(p.Values, p.Extract)
				return tr, err
			}),
	}
}

// seedTree builds the starting tree for insert and search without keeping
// the build trace.
func seedTree(values []int) (bst.Tree, error) {
	if len(values) == 0 {
		return bst.NewTree(), nil
	}
	_, tree, err := bst.Build(values)

	return tree, err
}

func parseGraph(edges string, directed bool) (*graph.Graph, error) {
	if strings.TrimSpace(edges) == "" {
		edges = DemoEdges
	}
	var opts []graph.Option
	if directed {
		opts = append(opts, graph.WithDirected())
	}
	if shape, ok := strings.CutPrefix(strings.TrimSpace(edges), RandomPrefix); ok {
		return randomGraph(shape, opts)
	}

	return graph.Parse(edges, opts...)
}

// randomGraph parses "N:SEED".
func randomGraph(shape string, opts []graph.Option) (*graph.Graph, error) {
	ns, seeds, ok := strings.Cut(shape, ":")
	if !ok {
		return nil, errors.Wrapf(graph.ErrRandomParams, "want %sN:SEED, got %q", RandomPrefix, shape)
	}
	n, err := strconv.Atoi(ns)
	if err != nil {
		return nil, fmt.Errorf("node count: %w: %w", graph.ErrRandomParams, err)
	}
	seed, err := strconv.ParseInt(seeds, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("seed: %w: %w", graph.ErrRandomParams, err)
	}
	return graph.Random(n, RandomDensity, seed, RandomMaxWeight, opts...)
}

func mstOptions(p MSTParams) []mst.Option {
	if p.SkipConsider {
		return []mst.Option{mst.WithSkipConsider()}
	}

	return nil
}

type traverseFunc func(*graph.Graph, string, ...traverse.Option) (trace.Trace[traverse.Snapshot], traverse.Result, error)

func runTraverse(run traverseFunc, p TraverseParams) (trace.Trace[traverse.Snapshot], error) {
	g, err := parseGraph(p.Edges, p.Directed)
	if err != nil {
		return trace.Trace[traverse.Snapshot]{}, err
	}
	start := p.Start
	if start == "" && len(g.Nodes) > 0 {
		start = g.Nodes[0].ID
	}
	opts := []traverse.Option{traverse.WithMaxDepth(p.MaxDepth)}
	if p.MaxDistance != nil {
		opts = append(opts, traverse.WithMaxDistance(*p.MaxDistance))
	}
	tr, _, err := run(g, start, opts...)

	return tr, err
}

func defaultFlow() FlowParams {
	return FlowParams{Edges: DemoNetwork, Directed: true, MaxAugmentations: flow.DefaultMaxAugmentations}
}

type flowFunc func(context.Context, *graph.Graph, string, string, ...flow.Option) (trace.Trace[flow.Snapshot], flow.Result, error)

func runFlow(run flowFunc, p FlowParams) (trace.Trace[flow.Snapshot], error) {
	g, err := parseGraph(p.Edges, p.Directed)
	if err != nil {
		return trace.Trace[flow.Snapshot]{}, err
	}
	source, sink := p.Source, p.Sink
	if n := len(g.Nodes); n > 0 {
		if source == "" {
			source = g.Nodes[0].ID
		}
		if sink == "" {
			sink = g.Nodes[n-1].ID
		}
	}
	tr, _, err := run(context.Background(), g, source, sink, flow.WithMaxAugmentations(p.MaxAugmentations))

	return tr, err
}

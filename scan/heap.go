package scan

import (
	"container/heap"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// AlgorithmHeap is the trace name of MinHeap.
const AlgorithmHeap = "heap"

// HeapResult is the outcome of MinHeap.
type HeapResult struct {
	// Heap is the remaining heap array.
	Heap []int

	// Extracted lists the removed minima in order.
	Extracted []int

	Swaps int
}

// tracedHeap is a heap.Interface whose Swap records a PhaseSwap step.
type tracedHeap struct {
	work  *Snapshot
	rec   *trace.Recorder[Snapshot]
	swaps int
}

func (h *tracedHeap) Len() int { return len(h.work.Array.Values) }

func (h *tracedHeap) Less(i, j int) bool { return h.work.Array.Values[i] < h.work.Array.Values[j] }

func (h *tracedHeap) Swap(i, j int) {
	if i == j {
		return
	}
	a := &h.work.Array
	vi, vj := a.Values[i], a.Values[j]
	a.Values[i], a.Values[j] = vj, vi
	a.Status[i], a.Status[j] = a.Status[j], a.Status[i]
	h.swaps++
	h.rec.Record(trace.PhaseSwap, *h.work,
		fmt.Sprintf("Swap %d (index %d) with %d (index %d)", vi, i, vj, j),
		IndexKey(i), IndexKey(j))
}

func (h *tracedHeap) Push(x any) {
	a := &h.work.Array
	a.Values = append(a.Values, x.(int))
	a.Status = append(a.Status, CellActive)
	h.rec.Record(trace.PhaseInsert, *h.work,
		fmt.Sprintf("Insert %d at index %d", x, len(a.Values)-1), IndexKey(len(a.Values)-1))
}

func (h *tracedHeap) Pop() any {
	a := &h.work.Array
	n := len(a.Values) - 1
	v := a.Values[n]
	a.Values, a.Status = a.Values[:n], a.Status[:n]
	h.work.Output = append(h.work.Output, v)

	return v
}

// MinHeap records inserting values one by one into a binary min-heap
// (sift-up) and then extracting the minimum extract times (sift-down).
//
// Steps: PhaseInit; per insert PhaseInsert then a PhaseSwap per sift-up
// exchange; per extraction a PhaseSwap moving the minimum to the end, a
// PhaseSwap per sift-down exchange over the remaining prefix, then
// PhaseRemove dropping the minimum; PhaseDone.
//
// Complexity: O((n + e) log n).
func MinHeap(values []int, extract int) (trace.Trace[Snapshot], HeapResult, error) {
	if err := checkLen(values); err != nil {
		return trace.Trace[Snapshot]{}, HeapResult{}, err
	}
	if extract < 0 || extract > len(values) {
		return trace.Trace[Snapshot]{}, HeapResult{}, errors.Wrapf(ErrExtractCount, "extract=%d with %d values", extract, len(values))
	}
	work := Snapshot{Array: NewArray(nil)}
	rec := trace.NewRecorder(AlgorithmHeap, Snapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Build a min-heap from %s", formatInts(values))
	h := &tracedHeap{work: &work, rec: rec}

	for _, v := range values {
		heap.Push(h, v)
		work.Array.Paint(0, h.Len(), CellDefault)
	}
	for i := 0; i < extract; i++ {
		v := heap.Pop(h).(int)
		work.Array.Paint(0, h.Len(), CellDefault)
		rec.Record(trace.PhaseRemove, work, fmt.Sprintf("Extracted minimum %d", v))
	}

	rec.Recordf(trace.PhaseDone, work, "Heap %s, extracted %s", formatInts(work.Array.Values), formatInts(work.Output))

	return rec.MustFinish(), HeapResult{
		Heap:      append([]int(nil), work.Array.Values...),
		Extracted: append([]int(nil), work.Output...),
		Swaps:     h.swaps,
	}, nil
}

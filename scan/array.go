package scan

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxValues bounds every input slice.
const MaxValues = 1024

var (
	// ErrTooLarge indicates an input longer than MaxValues.
	ErrTooLarge = errors.New("scan: too many values")

	// ErrUnsorted indicates an input that must be sorted ascending is not.
	ErrUnsorted = errors.New("scan: values must be sorted ascending")

	// ErrWindowSize indicates k outside [1, len(values)].
	ErrWindowSize = errors.New("scan: window size out of range")

	// ErrBucketCount indicates a bucket count outside [1, MaxBuckets].
	ErrBucketCount = errors.New("scan: bucket count out of range")

	// ErrExtractCount indicates more extractions than heap elements.
	ErrExtractCount = errors.New("scan: extract count out of range")
)

// CellStatus tags an array cell.
type CellStatus uint8

const (
	CellDefault  CellStatus = iota
	CellActive              // under a pointer or probed at this step
	CellWindow              // inside the current window or search range
	CellMatch               // part of the answer
	CellExcluded            // ruled out
)

func (s CellStatus) String() string {
	switch s {
	case CellDefault:
		return "default"
	case CellActive:
		return "active"
	case CellWindow:
		return "window"
	case CellMatch:
		return "match"
	case CellExcluded:
		return "excluded"
	}

	return fmt.Sprintf("cell(%d)", s)
}

// Array is an ordered sequence with per-index status and named pointers.
type Array struct {
	Values   []int
	Status   []CellStatus
	Pointers map[string]int
}

// NewArray copies values into a fresh Array.
func NewArray(values []int) Array {
	return Array{
		Values:   append([]int(nil), values...),
		Status:   make([]CellStatus, len(values)),
		Pointers: map[string]int{},
	}
}

// Clone deep-copies a.
func (a Array) Clone() Array {
	return Array{
		Values:   append([]int(nil), a.Values...),
		Status:   append([]CellStatus(nil), a.Status...),
		Pointers: maps.Clone(a.Pointers),
	}
}

// Paint sets status s on [lo, hi) and leaves other cells alone.
func (a Array) Paint(lo, hi int, s CellStatus) {
	for i := max(lo, 0); i < min(hi, len(a.Status)); i++ {
		a.Status[i] = s
	}
}

// Snapshot is the state at one step.
type Snapshot struct {
	Array Array

	// Buckets is the hash table for Hashing; nil otherwise.
	Buckets [][]int

	// Output collects extracted heap values in order.
	Output []int

	// Sum is the running window sum or pair sum, where relevant.
	Sum int
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Array: s.Array.Clone(), Output: append([]int(nil), s.Output...), Sum: s.Sum}
	if s.Buckets != nil {
		out.Buckets = make([][]int, len(s.Buckets))
		for i, b := range s.Buckets {
			out.Buckets[i] = append([]int(nil), b...)
		}
	}

	return out
}

// IndexKey is the highlight identifier of array index i.
func IndexKey(i int) string { return "i" + strconv.Itoa(i) }

// BucketKey is the highlight identifier of bucket b.
func BucketKey(b int) string { return "b" + strconv.Itoa(b) }

func checkLen(values []int) error {
	if len(values) > MaxValues {
		return errors.Wrapf(ErrTooLarge, "%d > %d", len(values), MaxValues)
	}

	return nil
}

func checkSorted(values []int) error {
	if !sort.IntsAreSorted(values) {
		return ErrUnsorted
	}

	return nil
}

func formatInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

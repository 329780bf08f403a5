package scan

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/trace"
)

// AlgorithmHashing is the trace name of Hashing.
const AlgorithmHashing = "hashing"

// MaxBuckets bounds the hash table size.
const MaxBuckets = 64

// HashResult is the outcome of Hashing.
type HashResult struct {
	Buckets [][]int

	// Found is aligned with the lookup keys.
	Found []bool

	// Collisions counts inserts into a non-empty bucket.
	Collisions int
}

// Bucket is the table slot of key: key mod m, made non-negative.
func Bucket(key, m int) int { return ((key % m) + m) % m }

// Hashing records inserting keys into a table of m chained buckets and then
// looking up each of lookups.
//
// Steps per insert: PhaseHash, PhaseInsert. Per lookup: PhaseHash, one
// PhaseCompare per chain element inspected, then PhaseFound or
// PhaseNotFound. A final PhaseDone summarises the table.
//
// Complexity: O(n + q·c) for q lookups over chains of length c.
func Hashing(keys []int, m int, lookups []int) (trace.Trace[Snapshot], HashResult, error) {
	if err := checkLen(keys); err != nil {
		return trace.Trace[Snapshot]{}, HashResult{}, err
	}
	if err := checkLen(lookups); err != nil {
		return trace.Trace[Snapshot]{}, HashResult{}, err
	}
	if m < 1 || m > MaxBuckets {
		return trace.Trace[Snapshot]{}, HashResult{}, errors.Wrapf(ErrBucketCount, "m=%d not in [1, %d]", m, MaxBuckets)
	}
	work := Snapshot{Array: NewArray(keys), Buckets: make([][]int, m)}
	a := work.Array
	rec := trace.NewRecorder(AlgorithmHashing, Snapshot.Clone)
	rec.Recordf(trace.PhaseInit, work, "Hash %d keys into %d buckets", len(keys), m)
	res := HashResult{Found: make([]bool, len(lookups))}

	for i, k := range keys {
		b := Bucket(k, m)
		a.Status[i] = CellActive
		rec.Record(trace.PhaseHash, work, fmt.Sprintf("h(%d) = %d mod %d = %d", k, k, m, b), IndexKey(i), BucketKey(b))
		desc := fmt.Sprintf("Append %d to bucket %d", k, b)
		if len(work.Buckets[b]) > 0 {
			res.Collisions++
			desc = fmt.Sprintf("Collision: chain %d onto bucket %d (length %d)", k, b, len(work.Buckets[b])+1)
		}
		work.Buckets[b] = append(work.Buckets[b], k)
		a.Status[i] = CellMatch
		rec.Record(trace.PhaseInsert, work, desc, IndexKey(i), BucketKey(b))
	}

	for qi, k := range lookups {
		b := Bucket(k, m)
		rec.Record(trace.PhaseHash, work, fmt.Sprintf("Lookup %d: h(%d) = %d", k, k, b), BucketKey(b))
		for _, v := range work.Buckets[b] {
			rec.Record(trace.PhaseCompare, work, fmt.Sprintf("Compare %d with %d in bucket %d", k, v, b), BucketKey(b))
			if v == k {
				res.Found[qi] = true
				break
			}
		}
		if res.Found[qi] {
			rec.Record(trace.PhaseFound, work, fmt.Sprintf("Found %d in bucket %d", k, b), BucketKey(b))
		} else {
			rec.Record(trace.PhaseNotFound, work, fmt.Sprintf("%d is not in bucket %d", k, b), BucketKey(b))
		}
	}

	rec.Recordf(trace.PhaseDone, work, "%d keys in %d buckets, %d collisions", len(keys), m, res.Collisions)
	res.Buckets = work.Clone().Buckets

	return rec.MustFinish(), res, nil
}

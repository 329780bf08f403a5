// Package scan records linear and logarithmic array techniques as
// replayable traces: two pointers, sliding window, binary search, bucket
// hashing and a binary min-heap.
//
// All engines share one Snapshot: an Array with per-cell status tags and
// named pointers, plus the bucket table and extracted output where the
// technique needs them. Array cells are highlighted as "i<index>" and
// buckets as "b<index>".
package scan

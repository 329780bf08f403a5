// Package divide records divide-and-conquer sorts as recursion trees.
//
// Every call of the recursion becomes a node in an arena Tree. A node keeps
// its input values until the step that completes its subtree, at which point
// they are replaced by the sorted result. Children are created at the
// PhaseDivide step that splits their parent.
//
// MergeSort splits at the midpoint and records PhaseMerge on the way back.
// QuickSort records PhasePartition around a pivot (the last element, or a
// seeded random element with WithSeed) and PhaseCombine on the way back.
// Singletons and empty slices are PhaseBase leaves.
package divide

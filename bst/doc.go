// Package bst records binary search tree insertion and lookup as replayable
// traces.
//
// The tree is an arena: nodes live in a slice and refer to their children
// by index, so a snapshot is a plain copy with no shared pointers.
//
// Ordering rule: a value strictly less than a node's value goes left, every
// other value (ties included) goes right. Search reports equality as found
// before applying that rule.
package bst

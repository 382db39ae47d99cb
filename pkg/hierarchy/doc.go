// Package hierarchy turns a nested name/value/children record into an
// immutable, sized and ordered tree ready for layout.
//
// # Input
//
// The input is the JSON shape used by most hierarchical datasets:
//
//	{
//	  "name": "root",
//	  "children": [
//	    {"name": "a", "value": 10},
//	    {"name": "b", "children": [{"name": "c", "value": 5}]}
//	  ]
//	}
//
// Leaves carry a strictly positive "value"; internal nodes carry "children"
// and no value of their own. An empty children array makes a node a leaf.
//
// # Building
//
// [New] validates the record and fails fast with an [errors.ErrCodeInvalidData]
// error naming the offending node. It then aggregates subtree values, sorts
// every node's children by descending value (stable, so equal values keep
// their source order) and numbers the items breadth-first.
//
// The resulting [Tree] is never mutated afterwards: layout results live in
// separate slices indexed by [Item.Index].
package hierarchy

// Package pack computes circle-packing layouts for a [hierarchy.Tree].
//
// Every item gets a circle: leaves have an area proportional to their value,
// siblings are placed tangent to each other around their common centre using
// a front-chain search, and every internal item gets the smallest circle
// enclosing its children plus padding.
//
// # Determinism
//
// Smallest-enclosing-circle computation shuffles its input. The shuffle is
// driven by a fixed linear congruential sequence, so the same tree and
// options always yield the same layout.
//
// # Padding
//
// The layout runs twice: once without padding to learn the overall scale,
// then again with the padding converted into intrinsic units. The final
// translation maps the root circle onto the largest circle that fits in the
// frame, centred. The resulting gap between siblings, and between a child and
// its parent's edge, approximates Options.Padding pixels.
//
// # Usage
//
//	tree, _ := hierarchy.New(root)
//	l, err := pack.Compute(tree, pack.Options{Width: 960, Height: 960, Padding: pack.DefaultPadding})
//	c := l.Circle(tree.Root) // {X: 480, Y: 480, R: 480}
package pack
